// SPDX-License-Identifier: BSD-3-Clause

package configstore

import "errors"

// ErrNotFound indicates the requested document path does not exist yet.
var ErrNotFound = errors.New("configstore: document not found")
