// SPDX-License-Identifier: BSD-3-Clause

package profile

// Kind identifies how a Profile derives its duty.
type Kind string

const (
	KindDefault Kind = "default" // identity no-op, reserved UID "0"
	KindFixed   Kind = "fixed"
	KindGraph   Kind = "graph"
	KindMix     Kind = "mix"
)

// DefaultProfileUID is the reserved UID of the no-op identity profile.
const DefaultProfileUID = "0"

// DefaultFunctionUID is the reserved UID of the default Identity function.
const DefaultFunctionUID = "0"

// MixReduction identifies how a Mix profile (or a WeightedAvg-less custom
// sensor, see pkg/customsensor) combines member duties.
type MixReduction string

const (
	MixMin MixReduction = "min"
	MixMax MixReduction = "max"
	MixAvg MixReduction = "avg"
)

// TempSource identifies one channel on one device to read a temperature from.
type TempSource struct {
	DeviceUID   string
	ChannelName string
}

// Point is one (temperature, duty) pair of a user-authored speed profile.
type Point struct {
	Temp float64
	Duty float64
}

// Profile is the declarative rule mapping a sensor to a duty, per spec §3.
type Profile struct {
	UID    string
	Kind   Kind
	Name   string

	FixedDuty *float64

	SpeedProfile []Point
	TempSource   *TempSource

	FunctionUID string

	MemberProfileUIDs []string
	MixFunction       *MixReduction
}

// Validate enforces the per-kind invariants of spec §3.
func (p Profile) Validate() error {
	switch p.Kind {
	case KindGraph:
		if len(p.SpeedProfile) == 0 {
			return ErrGraphRequiresSpeedProfile
		}
		if p.TempSource == nil {
			return ErrGraphRequiresTempSource
		}
	case KindMix:
		if len(p.MemberProfileUIDs) == 0 {
			return ErrMixRequiresMembers
		}
		if p.MixFunction == nil {
			return ErrMixRequiresFunction
		}
	case KindFixed:
		if p.FixedDuty == nil {
			return ErrFixedRequiresDuty
		}
	case KindDefault:
		// no-op, no additional requirements
	}
	return nil
}

// FunctionKind identifies the transformation a Function applies.
type FunctionKind string

const (
	FunctionIdentity             FunctionKind = "identity"
	FunctionStandard             FunctionKind = "standard"
	FunctionExponentialMovingAvg FunctionKind = "ema"
)

// Function is the smoothing/hysteresis transform applied inside a profile,
// per spec §3.
type Function struct {
	UID  string
	Name string
	Kind FunctionKind

	DutyMinimum float64
	DutyMaximum float64

	ResponseDelay int // ticks a proposed duty must hold before it counts (Standard)
	Deviance      float64
	OnlyDownward  bool
	SampleWindow  int // EMA window, capped at 16
}

// DefaultFunction is the reserved Identity function (UID "0").
func DefaultFunction() Function {
	return Function{
		UID:         DefaultFunctionUID,
		Name:        "Identity",
		Kind:        FunctionIdentity,
		DutyMinimum: 0,
		DutyMaximum: 100,
	}
}

// Clamp restricts duty to [DutyMinimum, DutyMaximum].
func (f Function) Clamp(duty float64) float64 {
	if duty < f.DutyMinimum {
		return f.DutyMinimum
	}
	if duty > f.DutyMaximum {
		return f.DutyMaximum
	}
	return duty
}
