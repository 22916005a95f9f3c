// SPDX-License-Identifier: BSD-3-Clause

// Package mode implements Mode snapshot/restore per spec §4.8: a named bag
// of (device_uid -> channel_name -> setting) capturing the settings
// currently scheduled across every device, restorable in one activation.
package mode
