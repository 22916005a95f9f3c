// SPDX-License-Identifier: BSD-3-Clause

package customsensormgr

import "errors"

// ErrSensorNotFound indicates an operation referenced a custom sensor ID
// that is not currently registered.
var ErrSensorNotFound = errors.New("custom sensor not found")
