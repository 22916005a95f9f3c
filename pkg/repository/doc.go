// SPDX-License-Identifier: BSD-3-Clause

// Package repository defines the uniform contract every device source
// (hwmon, liquidctl, CPU, GPU, custom sensors) implements, per spec §4.1.
// The engine never inspects concrete repository types; it only calls this
// interface, fanned out concurrently for Preload and sequentially for
// Update, once per tick.
package repository
