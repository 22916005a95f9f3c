// SPDX-License-Identifier: BSD-3-Clause

package logbuf

import "errors"

// ErrCapacityInvalid indicates NewRing was called with capacity <= 0.
var ErrCapacityInvalid = errors.New("logbuf: capacity must be positive")
