// SPDX-License-Identifier: BSD-3-Clause

package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// Repository adapts a DeviceService into repository.Repository, so the
// daemon can host a plugin-backed device family exactly like it hosts
// hwmon, liquidctl, CPU and GPU repositories (spec §4.1): it never inspects
// concrete repository types, so a plugin is just another entry in
// daemon.WithRepositories once wrapped here.
type Repository struct {
	kind device.Kind
	svc  DeviceService

	mu       sync.Mutex
	devices  []*device.Device
	statuses map[string]device.Status
}

// New constructs a Repository that delegates every device-family operation
// to svc. kind identifies the device family the plugin manages.
func New(kind device.Kind, svc DeviceService) *Repository {
	return &Repository{kind: kind, svc: svc, statuses: make(map[string]device.Status)}
}

// Kind implements repository.Repository.
func (r *Repository) Kind() device.Kind { return r.kind }

// InitializeDevices implements repository.Repository by asking the plugin
// to enumerate and (re-)probe its devices; called again after resume from
// suspend, same as every in-process repository (spec §4.9 step 2).
func (r *Repository) InitializeDevices(ctx context.Context) error {
	devices, err := r.svc.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInit, err)
	}
	for _, d := range devices {
		if err := r.svc.InitializeDevice(ctx, d.StableUID); err != nil {
			return fmt.Errorf("%w: initialize %s: %w", repository.ErrInit, d.StableUID, err)
		}
	}

	r.mu.Lock()
	r.devices = devices
	r.mu.Unlock()
	return nil
}

// Devices implements repository.Repository.
func (r *Repository) Devices() []*device.Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.devices
}

// PreloadStatuses implements repository.Repository, fetching each device's
// status over the plugin transport. One device's failure does not block the
// rest: a stuck or restarting plugin device must not stall the whole tick.
func (r *Repository) PreloadStatuses(ctx context.Context) error {
	r.mu.Lock()
	devices := r.devices
	r.mu.Unlock()

	statuses := make(map[string]device.Status, len(devices))
	for _, d := range devices {
		s, err := r.svc.Status(ctx, d.StableUID)
		if err != nil {
			continue
		}
		statuses[d.StableUID] = s
	}

	r.mu.Lock()
	r.statuses = statuses
	r.mu.Unlock()
	return nil
}

// UpdateStatuses implements repository.Repository.
func (r *Repository) UpdateStatuses(ctx context.Context) error {
	r.mu.Lock()
	devices := r.devices
	statuses := r.statuses
	r.mu.Unlock()

	for _, d := range devices {
		if s, ok := statuses[d.StableUID]; ok {
			d.PushStatus(s)
		}
	}
	return nil
}

// ApplySetting implements repository.Repository, translating the uniform
// Setting shape into the DeviceService call it corresponds to. A channel
// is switched to manual control before its first fixed-duty write, per
// DeviceService.EnableManualFanControl's contract.
func (r *Repository) ApplySetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	switch {
	case s.ResetToDefault:
		return r.svc.ResetChannel(ctx, deviceUID, channelName)
	case s.FixedDuty != nil:
		if err := r.svc.EnableManualFanControl(ctx, deviceUID, channelName); err != nil {
			return err
		}
		return r.svc.FixedDuty(ctx, deviceUID, channelName, *s.FixedDuty)
	case s.Lighting != nil:
		return r.svc.Lighting(ctx, deviceUID, channelName, *s.Lighting)
	case s.Lcd != nil:
		return r.svc.Lcd(ctx, deviceUID, channelName, *s.Lcd)
	default:
		// ProfileUID: settingsctl resolves profiles to a fixed duty per
		// tick and applies it through the FixedDuty branch instead, same
		// as liquidctlrepo.
		return repository.ErrUnsupportedOperation
	}
}

// Shutdown implements repository.Repository, releasing every device the
// plugin is holding open for this repository.
func (r *Repository) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	devices := r.devices
	r.mu.Unlock()

	var firstErr error
	for _, d := range devices {
		if err := r.svc.Shutdown(ctx, d.StableUID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Health reports whether the plugin's backing connection is alive,
// surfaced separately from the per-tick Repository contract since it is
// not a per-device concept.
func (r *Repository) Health(ctx context.Context) error {
	return r.svc.Health(ctx)
}
