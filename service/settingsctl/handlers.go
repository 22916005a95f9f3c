// SPDX-License-Identifier: BSD-3-Clause

package settingsctl

import (
	"context"

	"github.com/nats-io/nats.go/micro"

	"github.com/coolercontrol/coolercontrold/pkg/ipc"
	"github.com/coolercontrol/coolercontrold/pkg/profile"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// applySettingRequest is the device.apply_setting wire payload: the
// target plus the Setting to schedule (spec §4.6).
type applySettingRequest struct {
	DeviceUID   string             `json:"device_uid"`
	ChannelName string             `json:"channel_name"`
	Setting     repository.Setting `json:"setting"`
}

func (c *Controller) handleProfileCreate(req micro.Request) {
	var p profile.Profile
	if err := decodeRequest(req, &p); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "invalid profile payload")
		return
	}
	if err := c.AddProfile(p); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "profile rejected")
		return
	}
	respondOK(req)
}

func (c *Controller) handleProfileDelete(req micro.Request) {
	uid := string(req.Data())
	if err := c.RemoveProfile(uid); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "profile not found")
		return
	}
	respondOK(req)
}

func (c *Controller) handleProfileList(req micro.Request) {
	respondJSON(req, c.ListProfiles())
}

func (c *Controller) handleFunctionCreate(req micro.Request) {
	var f profile.Function
	if err := decodeRequest(req, &f); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "invalid function payload")
		return
	}
	if err := c.AddFunction(f); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "function rejected")
		return
	}
	respondOK(req)
}

func (c *Controller) handleFunctionDelete(req micro.Request) {
	uid := string(req.Data())
	if err := c.RemoveFunction(uid); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "function not found")
		return
	}
	respondOK(req)
}

func (c *Controller) handleFunctionList(req micro.Request) {
	respondJSON(req, c.ListFunctions())
}

func (c *Controller) handleApplySetting(req micro.Request) {
	var ar applySettingRequest
	if err := decodeRequest(req, &ar); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "invalid apply_setting payload")
		return
	}
	if err := c.ScheduleSetting(context.Background(), ar.DeviceUID, ar.ChannelName, ar.Setting); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "setting rejected")
		return
	}
	respondOK(req)
}
