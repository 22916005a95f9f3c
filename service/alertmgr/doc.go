// SPDX-License-Identifier: BSD-3-Clause

// Package alertmgr owns the declarative set of alerts and their per-alert
// state machines. It exposes CRUD over NATS for the external API and an
// EvaluateAll method service/daemon's control loop drives once per tick
// with freshly committed channel readings.
package alertmgr
