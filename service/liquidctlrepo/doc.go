// SPDX-License-Identifier: BSD-3-Clause

// Package liquidctlrepo implements the repository.Repository that fronts the
// liquidctl bridge sidecar: a separate process owning the USB HID drivers,
// reached over loopback HTTP. This package owns the handshake, per-driver
// status translation and channel writes; it never touches USB directly.
package liquidctlrepo
