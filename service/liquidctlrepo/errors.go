// SPDX-License-Identifier: BSD-3-Clause

package liquidctlrepo

import "errors"

var (
	// ErrHandshakeFailed indicates the bridge did not answer /handshake
	// within the configured retry budget.
	ErrHandshakeFailed = errors.New("liquidctl bridge handshake failed")
	// ErrUnsupportedDriver indicates a device_type not in the supported set;
	// the device is skipped rather than surfaced as a fatal error.
	ErrUnsupportedDriver = errors.New("unsupported liquidctl driver")
	// ErrBridgeRequest indicates a non-2xx response from the bridge.
	ErrBridgeRequest = errors.New("liquidctl bridge request failed")
)
