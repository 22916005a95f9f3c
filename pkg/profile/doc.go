// SPDX-License-Identifier: BSD-3-Clause

// Package profile implements the transformation algebra from spec §4.5:
// normalizing a user-authored temp/duty curve into a strictly-increasing
// step function, interpolating a duty for an arbitrary temperature,
// smoothing/hysteresis functions (identity, EMA pre-processor, the
// Standard deviance+response-delay function), mix composition of member
// profiles, and the duty-threshold write-suppression post-processor.
//
// Nothing here performs I/O. Callers (service/settingsctl) resolve temp
// sources against live device status and hand this package plain floats.
package profile
