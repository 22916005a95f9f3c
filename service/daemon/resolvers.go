// SPDX-License-Identifier: BSD-3-Clause

package daemon

import (
	"context"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// lookupDevice implements settingsctl.DeviceLookup and
// customsensormgr.TempResolver's device-resolution half by scanning every
// configured repository's device list. Device counts are small (tens, not
// thousands) so a linear scan per call is not worth indexing.
func (d *Daemon) lookupDevice(uid string) (*device.Device, bool) {
	for _, r := range d.repositories {
		for _, dev := range r.Devices() {
			if dev.StableUID == uid {
				return dev, true
			}
		}
	}
	return nil, false
}

// ownerOf returns the repository that owns deviceUID.
func (d *Daemon) ownerOf(uid string) (repository.Repository, bool) {
	for _, r := range d.repositories {
		for _, dev := range r.Devices() {
			if dev.StableUID == uid {
				return r, true
			}
		}
	}
	return nil, false
}

// applySetting implements settingsctl.ApplyFunc, dispatching a resolved
// Setting to the repository that owns deviceUID.
func (d *Daemon) applySetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	r, ok := d.ownerOf(deviceUID)
	if !ok {
		return ErrDeviceNotFound
	}
	return r.ApplySetting(ctx, deviceUID, channelName, s)
}

// resolveChannelValue implements alertmgr.ChannelResolver and
// customsensormgr.TempResolver: it reads whichever measurement the named
// channel reports, preferring a temperature reading and falling back to
// duty, RPM, watts, or clock speed in that order. Alerts in this spec
// watch temperature bands, but the resolver stays generic so an Alert
// could equally watch a fan's duty or RPM channel.
func (d *Daemon) resolveChannelValue(deviceUID, channelName string) (float64, bool) {
	dev, ok := d.lookupDevice(deviceUID)
	if !ok {
		return 0, false
	}
	st, ok := dev.Latest()
	if !ok {
		return 0, false
	}
	if v, ok := st.TempByChannel(channelName); ok {
		return v, true
	}
	cs, ok := st.ChannelByName(channelName)
	if !ok {
		return 0, false
	}
	switch {
	case cs.DutyPercent != nil:
		return *cs.DutyPercent, true
	case cs.RPM != nil:
		return *cs.RPM, true
	case cs.Watts != nil:
		return *cs.Watts, true
	case cs.MHz != nil:
		return *cs.MHz, true
	default:
		return 0, false
	}
}
