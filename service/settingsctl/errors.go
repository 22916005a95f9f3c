// SPDX-License-Identifier: BSD-3-Clause

package settingsctl

import "errors"

var (
	// ErrDeviceNotFound indicates a schedule targeted an unknown device.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrProfileNotFound indicates a schedule or Mix member referenced an
	// unregistered profile UID.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrFunctionNotFound indicates RemoveFunction was given an
	// unregistered function UID. A profile referencing an unregistered
	// function is not an error: it is evaluated with the Identity default.
	ErrFunctionNotFound = errors.New("function not found")
	// ErrEmptySetting indicates a Setting with no field populated was
	// scheduled.
	ErrEmptySetting = errors.New("setting has no populated field")

	// ErrFixedNotSupported indicates the channel does not allow a
	// software-applied fixed duty (spec §4.6 validation).
	ErrFixedNotSupported = errors.New("channel does not support fixed duty")
	// ErrGraphNotSupported indicates a Graph profile targeting the
	// device's own internal temperature was scheduled against a channel
	// that supports neither a hardware nor a software graph.
	ErrGraphNotSupported = errors.New("channel does not support a graph profile")
	// ErrExternalSourceRequiresFixed indicates a profile whose resolved
	// duty is driven by a temperature outside the target device was
	// scheduled against a channel that does not support fixed duty.
	ErrExternalSourceRequiresFixed = errors.New("channel does not support a profile driven by an external temperature source")
	// ErrLightingNotSupported indicates the requested lighting mode is not
	// in the channel's catalog.
	ErrLightingNotSupported = errors.New("lighting mode not supported on channel")
	// ErrLcdNotSupported indicates the requested LCD mode is not in the
	// channel's catalog.
	ErrLcdNotSupported = errors.New("lcd mode not supported on channel")
)
