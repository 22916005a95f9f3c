// SPDX-License-Identifier: BSD-3-Clause

// Package customsensor implements CustomSensor (spec §3): a synthetic
// temperature source either combined (Mix) from other temp sources by a
// reduction function, or read from a single-line text file (File).
//
// The File kind's read semantics are intentionally narrow — see spec §9
// open questions — because the upstream implementation this spec was
// distilled from never finished it: a File sensor is one decimal number,
// line-terminated, nothing more.
package customsensor
