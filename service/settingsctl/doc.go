// SPDX-License-Identifier: BSD-3-Clause

// Package settingsctl is the settings controller and LCD commander (spec
// §4.6). It owns the declarative Profile/Function catalog, validates and
// indexes scheduled settings by (device_uid, channel_name), and on each
// tick runs the profile engine's function pipeline to dispatch duty
// writes. A parallel, slower structure re-pushes LCD settings every other
// tick so a stalled LCD link never blocks the control loop.
//
// Critical-path evaluation (Tick, TickLCD) is driven directly by
// service/daemon's main loop, not over NATS: the controller is handed a
// DeviceLookup and ApplyFunc closure at construction, both backed by the
// daemon's in-process repository references. NATS is only used for the
// external CRUD/schedule surface (profile.*, function.*, device.apply_setting).
package settingsctl
