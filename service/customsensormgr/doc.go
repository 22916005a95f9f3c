// SPDX-License-Identifier: BSD-3-Clause

// Package customsensormgr adapts pkg/customsensor into a repository.Repository:
// a single composite device whose channels are user-defined temperatures,
// resolved by mixing or reading other repositories' channel statuses.
package customsensormgr
