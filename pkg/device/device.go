// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Kind identifies the family of hardware a Device belongs to.
type Kind string

const (
	KindCPU           Kind = "cpu"
	KindGPU           Kind = "gpu"
	KindLiquidctl     Kind = "liquidctl"
	KindHwmon         Kind = "hwmon"
	KindComposite     Kind = "composite"
	KindCustomSensors Kind = "custom_sensors"
)

// valid reports whether k is one of the known device kinds.
func (k Kind) valid() bool {
	switch k {
	case KindCPU, KindGPU, KindLiquidctl, KindHwmon, KindComposite, KindCustomSensors:
		return true
	default:
		return false
	}
}

// SpeedOptions describes what a channel allows in terms of duty control.
type SpeedOptions struct {
	MinDuty                float64
	MaxDuty                float64
	ProfilesEnabled        bool // the device can run a hardware graph profile internally
	FixedEnabled           bool
	ManualProfilesEnabled  bool // the device accepts a software-applied fixed duty per tick
}

// LightingMode describes one supported RGB lighting mode.
type LightingMode struct {
	Name       string
	MinColors  int
	MaxColors  int
	Speeds     []string
	Backward   bool
}

// LcdMode describes one supported LCD mode.
type LcdMode struct {
	Name           string
	WidthPx        int
	HeightPx       int
	MaxImageSizeKB int
}

// ChannelInfo carries the static capabilities of one controllable or
// observable channel on a Device.
type ChannelInfo struct {
	Name          string
	Speed         *SpeedOptions
	LightingModes []LightingMode
	LcdModes      []LcdMode
}

// DeviceInfo carries the static catalog and constraints for a Device.
type DeviceInfo struct {
	Channels           map[string]ChannelInfo
	TempMin            float64
	TempMax            float64 // the critical-temperature anchor used by profile normalization
	DriverName         string
	DriverVersion      string
	ProfileMaxLength   int // 0 means unconstrained
	ModelSeries        string
}

// Device is the immutable identity plus mutable status ring for one piece
// of cooling-relevant hardware. Only the owning repository's snapshot path
// and shutdown cleanup are permitted to mutate it after construction.
type Device struct {
	Name       string
	Kind       Kind
	TypeIndex  int
	StableUID  string
	HardwareID string // optional; empty when the kind has no stable hardware identifier

	Info DeviceInfo
	ring *Ring
}

// New constructs a Device and derives its StableUID. hardwareID may be
// empty, in which case the UID is derived from (kind, name, typeIndex)
// instead, per spec §3.
func New(name string, kind Kind, typeIndex int, hardwareID string, info DeviceInfo, ringCapacity int) (*Device, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	ring, err := NewRing(ringCapacity)
	if err != nil {
		return nil, err
	}

	return &Device{
		Name:       name,
		Kind:       kind,
		TypeIndex:  typeIndex,
		HardwareID: hardwareID,
		StableUID:  deriveStableUID(kind, name, typeIndex, hardwareID),
		Info:       info,
		ring:       ring,
	}, nil
}

// deriveStableUID computes a SHA-256 digest over (kind, hardware_id) when a
// hardware identifier is available, or (kind, name, type_index) otherwise,
// so that the same physical device keeps its UID across reboots even when
// enumeration order shifts.
func deriveStableUID(kind Kind, name string, typeIndex int, hardwareID string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	if hardwareID != "" {
		h.Write([]byte(hardwareID))
	} else {
		h.Write([]byte(name))
		h.Write([]byte{0})
		fmt.Fprintf(h, "%d", typeIndex)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Channel returns the ChannelInfo for name, or an error if the channel is
// not part of this device's catalog.
func (d *Device) Channel(name string) (ChannelInfo, error) {
	ch, ok := d.Info.Channels[name]
	if !ok {
		return ChannelInfo{}, fmt.Errorf("%w: %s on device %s", ErrChannelNotFound, name, d.Name)
	}
	return ch, nil
}

// PushStatus appends a new Status snapshot, evicting the oldest entry once
// the ring is at capacity.
func (d *Device) PushStatus(s Status) {
	d.ring.Push(s)
}

// Latest returns the most recently committed Status, if any.
func (d *Device) Latest() (Status, bool) {
	return d.ring.Latest()
}

// History returns up to limit most recent statuses, oldest first. limit <= 0
// returns the full retained history.
func (d *Device) History(limit int) []Status {
	return d.ring.Slice(limit)
}

// Since returns statuses committed at or after t, oldest first, located via
// binary search on the ring's timestamp ordering.
func (d *Device) Since(t int64) []Status {
	return d.ring.Since(t)
}

// Reset clears the status ring, used on resume from suspend so no
// pre-suspend/post-resume discontinuity is graphed (spec §4.9).
func (d *Device) Reset() {
	d.ring.Reset()
}
