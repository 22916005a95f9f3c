// SPDX-License-Identifier: BSD-3-Clause

package device

import "errors"

var (
	// ErrInvalidKind indicates an unrecognized device kind was supplied.
	ErrInvalidKind = errors.New("invalid device kind")
	// ErrEmptyName indicates a device was constructed without a name.
	ErrEmptyName = errors.New("device name cannot be empty")
	// ErrChannelNotFound indicates the requested channel does not exist on the device.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrRingCapacityInvalid indicates a non-positive status ring capacity was requested.
	ErrRingCapacityInvalid = errors.New("status ring capacity must be positive")
)
