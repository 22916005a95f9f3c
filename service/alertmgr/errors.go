// SPDX-License-Identifier: BSD-3-Clause

package alertmgr

import "errors"

var (
	// ErrAlertNotFound indicates an operation referenced an unknown alert UID.
	ErrAlertNotFound = errors.New("alert not found")
	// ErrAlreadyRunning indicates Run was called twice on the same Manager.
	ErrAlreadyRunning = errors.New("alert manager already running")
)
