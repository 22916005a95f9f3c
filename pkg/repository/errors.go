// SPDX-License-Identifier: BSD-3-Clause

package repository

import "errors"

var (
	// ErrUnsupportedOperation indicates the target channel's capabilities
	// disallow the requested apply operation.
	ErrUnsupportedOperation = errors.New("operation not supported by channel")
	// ErrDeviceGone indicates the device disappeared between enumeration and access.
	ErrDeviceGone = errors.New("device no longer present")
	// ErrIO indicates an I/O failure committing a snapshot.
	ErrIO = errors.New("repository I/O failure")
	// ErrInit indicates repository initialization (discovery/probing) failed.
	ErrInit = errors.New("repository initialization failed")
)
