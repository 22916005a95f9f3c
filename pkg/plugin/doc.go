// SPDX-License-Identifier: BSD-3-Clause

// Package plugin declares the contract a system-service plugin implements
// to add a device family without recompiling the daemon (spec §1, listed
// as a collaborator whose lifecycle is out of scope). Repository adapts
// any DeviceService implementation into a repository.Repository, so a
// plugin-backed device family is hosted by the daemon the same way hwmon,
// liquidctl, CPU and GPU repositories are (daemon.WithRepositories); the
// process supervision, discovery and versioning of the plugin itself, and
// its wire transport, are not specified here.
package plugin
