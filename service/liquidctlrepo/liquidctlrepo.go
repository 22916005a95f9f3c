// SPDX-License-Identifier: BSD-3-Clause

package liquidctlrepo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// RingCapacity matches the hwmon repository's status depth so history
// windows line up across device kinds.
const RingCapacity = 1860

type liquidDevice struct {
	dev        *device.Device
	bridgeID   int
	deviceType string
	profile    driverProfile

	mu      sync.Mutex
	pending []bridgeStatusEntry
}

// Repository implements repository.Repository against the liquidctl bridge
// sidecar (spec §4.3).
type Repository struct {
	cfg    *config
	client *bridgeClient

	mu      sync.Mutex
	devices []*liquidDevice
}

// New constructs a Repository bound to the bridge at cfg's base URL.
// Discovery and the handshake happen in InitializeDevices.
func New(opts ...Option) *Repository {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Repository{cfg: cfg, client: newBridgeClient(cfg)}
}

// Kind implements repository.Repository.
func (r *Repository) Kind() device.Kind { return device.KindLiquidctl }

// InitializeDevices implements repository.Repository.
func (r *Repository) InitializeDevices(ctx context.Context) error {
	if err := r.client.handshake(ctx, r.cfg); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInit, err)
	}
	if err := r.client.connectAll(ctx); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInit, err)
	}

	bridgeDevices, err := r.client.listDevices(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInit, err)
	}

	var devices []*liquidDevice
	for idx, bd := range bridgeDevices {
		profile, ok := driverFor(bd.DeviceType)
		if !ok {
			continue // unsupported driver, skip rather than fail the whole repo (spec §4.3)
		}

		if _, err := r.client.initialize(ctx, bd.ID, ""); err != nil {
			continue
		}

		info := device.DeviceInfo{Channels: map[string]device.ChannelInfo{}}
		for _, ch := range profile.channels {
			info.Channels[ch] = device.ChannelInfo{
				Name:          ch,
				Speed:         &device.SpeedOptions{MinDuty: 0, MaxDuty: 100, FixedEnabled: true, ManualProfilesEnabled: true},
				LightingModes: profile.lightingModes,
				LcdModes:      profile.lcdModes,
			}
		}

		hardwareID := fmt.Sprintf("liquidctl:%d:%s", bd.ID, bd.Description)
		dev, err := device.New(bd.Description, device.KindLiquidctl, idx, hardwareID, info, RingCapacity)
		if err != nil {
			continue
		}

		devices = append(devices, &liquidDevice{
			dev:        dev,
			bridgeID:   bd.ID,
			deviceType: bd.DeviceType,
			profile:    profile,
		})
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
	out := make([]*device.Device, 0, len(r.devices))
	for _, ld := range r.devices {
		out = append(out, ld.dev)
	}
	return out
}

// PreloadStatuses fetches each device's status into a per-device pending
// queue so UpdateStatuses never blocks on USB I/O (spec §4.3).
func (r *Repository) PreloadStatuses(ctx context.Context) error {
	r.mu.Lock()
	devices := append([]*liquidDevice(nil), r.devices...)
	r.mu.Unlock()

	var firstErr error
	for _, ld := range devices {
		entries, err := r.client.status(ctx, ld.bridgeID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ld.mu.Lock()
		ld.pending = entries
		ld.mu.Unlock()
	}
	return firstErr
}

// UpdateStatuses implements repository.Repository.
func (r *Repository) UpdateStatuses(ctx context.Context) error {
	r.mu.Lock()
	devices := append([]*liquidDevice(nil), r.devices...)
	r.mu.Unlock()

	now := time.Now().Unix()
	for _, ld := range devices {
		ld.mu.Lock()
		entries := ld.pending
		ld.mu.Unlock()

		status := translateStatus(ld.profile, entries)
		status.TimestampUnix = now
		ld.dev.PushStatus(status)
	}
	return nil
}

// translateStatus maps the bridge's weakly-typed (label, value, unit) list
// onto a structured Status by matching each label against the driver's
// declared channel names (spec §4.3).
func translateStatus(profile driverProfile, entries []bridgeStatusEntry) device.Status {
	var status device.Status
	for _, e := range entries {
		lowerLabel := strings.ToLower(e.Label)
		channel := matchChannel(profile.channels, lowerLabel)

		switch {
		case strings.Contains(e.Unit, "rpm"):
			v := e.Value
			status.Channels = append(status.Channels, device.ChannelStatus{ChannelName: channel, RPM: &v})
		case strings.Contains(e.Unit, "%"):
			v := device.Round2(e.Value)
			status.Channels = append(status.Channels, device.ChannelStatus{ChannelName: channel, DutyPercent: &v})
		case strings.Contains(e.Unit, "W"):
			v := device.Round2(e.Value)
			status.Channels = append(status.Channels, device.ChannelStatus{ChannelName: channel, Watts: &v})
		case strings.Contains(e.Unit, "C"):
			status.Temps = append(status.Temps, device.TempStatus{ChannelName: channel, Celsius: device.Round2(e.Value)})
		}
	}
	return status
}

func matchChannel(channels []string, lowerLabel string) string {
	for _, ch := range channels {
		if strings.Contains(lowerLabel, ch) {
			return ch
		}
	}
	if strings.Contains(lowerLabel, "liquid") || strings.Contains(lowerLabel, "coolant") {
		return "coolant"
	}
	return lowerLabel
}

// ApplySetting implements repository.Repository.
func (r *Repository) ApplySetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	r.mu.Lock()
	ld := r.findDevice(deviceUID)
	r.mu.Unlock()
	if ld == nil {
		return repository.ErrDeviceGone
	}

	switch {
	case s.FixedDuty != nil:
		return r.client.setFixedSpeed(ctx, ld.bridgeID, channelName, *s.FixedDuty)
	case s.Lighting != nil:
		return r.client.setLighting(ctx, ld.bridgeID, channelName, s.Lighting.ModeName, s.Lighting.Colors, s.Lighting.Speed, s.Lighting.Backward)
	case s.Lcd != nil:
		return r.client.setScreen(ctx, ld.bridgeID, channelName, s.Lcd.ModeName, s.Lcd.Image)
	case s.ResetToDefault:
		_, err := r.client.initialize(ctx, ld.bridgeID, "")
		return err
	default:
		// ProfileUID: onboard hardware profile offload is not implemented;
		// the settings controller resolves profiles to a fixed duty per
		// tick and applies it through the FixedDuty branch instead.
		return repository.ErrUnsupportedOperation
	}
}

// Shutdown implements repository.Repository, asking the bridge sidecar to
// exit gracefully.
func (r *Repository) Shutdown(ctx context.Context) error {
	return r.client.quit(ctx)
}

func (r *Repository) findDevice(uid string) *liquidDevice {
	for _, ld := range r.devices {
		if ld.dev.StableUID == uid {
			return ld
		}
	}
	return nil
}
