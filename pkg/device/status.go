// SPDX-License-Identifier: BSD-3-Clause

package device

import "math"

// TempStatus is one temperature reading within a Status snapshot.
type TempStatus struct {
	ChannelName string
	Celsius     float64
}

// ChannelStatus is one channel's observed state within a Status snapshot.
// Fields are pointers so that a channel can report only the measurements
// that apply to it (a fan reports RPM/duty/mode, a power rail reports
// watts, a clock domain reports MHz).
type ChannelStatus struct {
	ChannelName string
	RPM         *float64
	DutyPercent *float64
	PWMMode     *int
	Watts       *float64
	MHz         *float64
}

// Status is one point-in-time snapshot committed by a repository.
type Status struct {
	TimestampUnix int64
	Firmware      string
	Temps         []TempStatus
	Channels      []ChannelStatus
}

// Round2 rounds a reading to two decimal places, per spec §3.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TempByChannel returns the value of the named temperature channel, if present.
func (s Status) TempByChannel(name string) (float64, bool) {
	for _, t := range s.Temps {
		if t.ChannelName == name {
			return t.Celsius, true
		}
	}
	return 0, false
}

// ChannelByName returns the named channel status, if present.
func (s Status) ChannelByName(name string) (ChannelStatus, bool) {
	for _, c := range s.Channels {
		if c.ChannelName == name {
			return c, true
		}
	}
	return ChannelStatus{}, false
}
