// SPDX-License-Identifier: BSD-3-Clause

// Package hwmon provides context-aware, goroutine-safe read/write primitives
// for the Linux hwmon (hardware monitoring) subsystem exposed through sysfs
// under /sys/class/hwmon/.
//
// The package does not enumerate or classify devices itself: service/hwmonrepo
// and service/gpurepo walk DefaultHwmonPath, build the sensor/fan paths they
// need, and call ReadIntCtx/WriteIntCtx/ReadStringCtx against those paths.
// Keeping hwmon limited to raw I/O means the discovery heuristics (which
// labels count as a fan, how PWM enable modes are probed) live next to the
// code that actually has an opinion about them, instead of behind a generic
// Config/Discoverer layer nothing in this daemon needs.
//
// Every operation accepts a context so callers (polling loops, the duty-write
// path) can bound how long a single sysfs read or write is allowed to block;
// ErrOperationTimeout is returned on cancellation, and failures are wrapped
// in one of the sentinel errors in errors.go so callers can classify them
// with errors.Is without parsing messages.
package hwmon
