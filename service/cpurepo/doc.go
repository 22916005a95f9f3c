// SPDX-License-Identifier: BSD-3-Clause

// Package cpurepo implements the repository.Repository that reports CPU
// temperature and aggregate load as a single informational device. It has
// no controllable channels: CPUs are not cooled by daemon-issued duty
// writes, only observed.
package cpurepo
