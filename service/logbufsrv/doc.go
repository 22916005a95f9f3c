// SPDX-License-Identifier: BSD-3-Clause

// Package logbufsrv owns the daemon's ring-buffered log (pkg/logbuf) and
// serves it, together with process health, over NATS for the external
// /health and log-stream endpoints (spec §2 "Log buffer", §6 "GET
// /health"). It is opt-in: a daemon built without it still logs to
// console/OTel exactly as before, it just has no in-memory log to answer
// health queries from.
package logbufsrv
