// SPDX-License-Identifier: BSD-3-Clause

// Package logbuf implements the ring-buffered in-memory log the health
// endpoint reads from (spec §2 "Log buffer", §6 "GET /health"). It never
// touches a file or a transport; it is a slog.Handler that fans every
// record into a fixed-capacity ring alongside whatever other handlers the
// caller composes it with, and a running count of warnings and errors
// observed since start.
package logbuf
