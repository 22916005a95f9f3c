// SPDX-License-Identifier: BSD-3-Clause

package mode

import "errors"

// ErrEmptyName indicates a Mode was built without a name.
var ErrEmptyName = errors.New("mode name cannot be empty")
