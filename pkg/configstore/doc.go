// SPDX-License-Identifier: BSD-3-Clause

// Package configstore persists Profiles, Functions, Alerts, Modes and
// CustomSensors to /etc/coolercontrol/*.toml (spec §6), using
// github.com/BurntSushi/toml for encoding and pkg/file's atomic
// write-then-rename primitive so a crash mid-save never corrupts the
// document. Saving then loading round-trips byte-identically modulo key
// order (spec §8 Laws).
package configstore
