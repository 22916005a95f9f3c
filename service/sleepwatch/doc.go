// SPDX-License-Identifier: BSD-3-Clause

// Package sleepwatch subscribes to the system bus's
// org.freedesktop.login1.Manager PrepareForSleep signal and exposes the
// suspend/resume state the main loop polls once per tick (spec §4.9 steps
// 1-2, §9). The signal parsing is a thin shell around pkg/sleepwatch's pure
// state machine.
package sleepwatch
