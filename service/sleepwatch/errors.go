// SPDX-License-Identifier: BSD-3-Clause

package sleepwatch

import "errors"

// ErrConnectSystemBus indicates the system bus connection could not be
// established; callers should treat this as non-fatal and run the daemon
// without sleep/resume coordination (spec §7: only socket bind, session
// key, and cancellation are fatal).
var ErrConnectSystemBus = errors.New("sleepwatch: connect to system bus")
