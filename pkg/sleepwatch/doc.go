// SPDX-License-Identifier: BSD-3-Clause

// Package sleepwatch tracks suspend/resume state for the main loop (spec
// §4.9 steps 1-2, §9 "Sleep/resume"). The state machine itself is pure and
// has no D-Bus dependency; service/sleepwatch wires it to the session/
// system bus's PrepareForSleep signal.
package sleepwatch
