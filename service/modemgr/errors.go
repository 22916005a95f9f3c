// SPDX-License-Identifier: BSD-3-Clause

package modemgr

import "errors"

// ErrModeNotFound indicates an operation referenced an unknown mode UID.
var ErrModeNotFound = errors.New("mode not found")
