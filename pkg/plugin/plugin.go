// SPDX-License-Identifier: BSD-3-Clause

package plugin

import (
	"context"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/profile"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// DeviceService is the interface a device-family plugin exposes over its
// transport (a gRPC service in a full deployment; this package only
// describes the shape, not the wire encoding). A Repository implementation
// that delegates to an external plugin process adapts this interface,
// rather than talking to hardware directly.
type DeviceService interface {
	// ListDevices returns every device the plugin currently manages.
	ListDevices(ctx context.Context) ([]*device.Device, error)

	// InitializeDevice (re-)probes one device, used both at daemon start
	// and after resume from suspend.
	InitializeDevice(ctx context.Context, deviceUID string) error

	// Status returns the latest status snapshot for one device.
	Status(ctx context.Context, deviceUID string) (device.Status, error)

	// ResetChannel restores a channel to its default, unmanaged state.
	ResetChannel(ctx context.Context, deviceUID, channelName string) error

	// EnableManualFanControl switches a channel into software-driven mode
	// prior to the first FixedDuty or SpeedProfile apply.
	EnableManualFanControl(ctx context.Context, deviceUID, channelName string) error

	// FixedDuty applies a constant duty percentage to a channel.
	FixedDuty(ctx context.Context, deviceUID, channelName string, dutyPercent float64) error

	// SpeedProfile pushes a hardware-native speed curve to a channel that
	// supports onboard interpolation.
	SpeedProfile(ctx context.Context, deviceUID, channelName string, points []profile.Point) error

	// Lighting applies a lighting-mode setting to a channel.
	Lighting(ctx context.Context, deviceUID, channelName string, s repository.LightingSetting) error

	// Lcd applies an LCD setting to a channel.
	Lcd(ctx context.Context, deviceUID, channelName string, s repository.LcdSetting) error

	// Shutdown releases any resources the plugin holds for this device.
	Shutdown(ctx context.Context, deviceUID string) error

	// Health reports whether the plugin's backing connection is alive.
	Health(ctx context.Context) error
}
