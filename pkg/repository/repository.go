// SPDX-License-Identifier: BSD-3-Clause

package repository

import (
	"context"

	"github.com/coolercontrol/coolercontrold/pkg/device"
)

// Setting is the applied, per-channel configuration a repository is asked
// to enact. Exactly one field is populated; multiplexed forms are rejected
// by callers before they ever reach a repository (spec §3 Setting).
type Setting struct {
	FixedDuty     *float64
	ProfileUID    *string
	Lighting      *LightingSetting
	Lcd           *LcdSetting
	PWMMode       *int
	ResetToDefault bool
}

// LightingSetting carries a lighting-mode apply request.
type LightingSetting struct {
	ModeName string
	Colors   [][3]uint8
	Speed    string
	Backward bool
}

// LcdSetting carries an LCD apply request.
type LcdSetting struct {
	ModeName string
	Image    []byte // pre-rendered bitmap; transcoding itself is out of scope (spec §1)
}

// Repository is the uniform contract implemented by every device source:
// hwmon, the liquidctl bridge, CPU, GPU and custom sensors (spec §4.1).
// The engine treats every repository polymorphically through this
// interface and never inspects concrete types.
type Repository interface {
	// Kind returns the DeviceKind this repository owns.
	Kind() device.Kind

	// InitializeDevices discovers, probes and registers this repository's
	// devices, seeding one initial Status per device. Must be idempotent:
	// it is called again after resume from suspend (spec §4.9 step 2).
	InitializeDevices(ctx context.Context) error

	// Devices returns stable handles to every device this repository owns.
	Devices() []*device.Device

	// PreloadStatuses performs any I/O needed to prepare the next status
	// snapshot without mutating device state. Intended to be awaited
	// concurrently across repositories within a bounded window (spec §4.1,
	// §4.9 step 3); it must not block past that window in a way that
	// corrupts its own internal state if cancelled.
	PreloadStatuses(ctx context.Context) error

	// UpdateStatuses commits the preloaded snapshot into each device's
	// ring. Must be fast (memory only) since it runs sequentially across
	// all repositories within one tick.
	UpdateStatuses(ctx context.Context) error

	// ApplySetting writes a channel-scoped setting. Returns
	// ErrUnsupportedOperation if the channel's capabilities disallow it.
	ApplySetting(ctx context.Context, deviceUID, channelName string, s Setting) error

	// Shutdown restores channels to their pre-control default (for hwmon
	// fans, restoring pwm*_enable to the value captured at init) and
	// releases any held resources.
	Shutdown(ctx context.Context) error
}
