// SPDX-License-Identifier: BSD-3-Clause

package logbufsrv

import "errors"

// ErrAlreadyRunning indicates Run was called twice on the same Server.
var ErrAlreadyRunning = errors.New("logbufsrv: already running")
