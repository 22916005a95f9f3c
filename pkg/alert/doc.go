// SPDX-License-Identifier: BSD-3-Clause

// Package alert implements the band-observation rules of spec §4.7: a
// streak timer per Alert that debounces transitions into and out of an
// out-of-band reading by warmup_duration_s, backed by the
// Inactive/Active/Error machine in pkg/state.
//
// Alerts never cause writes; they only observe and log.
package alert
