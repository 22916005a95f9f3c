// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the immutable device identity, its channel
// catalog, and the bounded status history every repository publishes into.
//
// A Device never mutates its own identity after construction: name, kind,
// type index and stable UID are fixed at discovery time. Only its Status
// ring is appended to, by the owning repository's snapshot path.
package device
