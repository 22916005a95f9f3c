// SPDX-License-Identifier: BSD-3-Clause

// Package daemon is the main-loop orchestrator (spec §4.9). It supervises
// every NATS-facing actor (the IPC bus, settings controller, alert and
// mode managers, sleep watcher, log buffer/health server) in an oversight
// restart tree, the way service/operator does in the teacher repo, and
// additionally drives the single-threaded 1 Hz control loop itself:
// concurrent preload, sequential status commit, LCD dispatch, profile
// evaluation, and alert evaluation, in that order.
//
// The control loop never crosses the NATS bus for its tick-critical path.
// The daemon holds direct Go interface references to every
// pkg/repository.Repository and calls their methods in-process; the
// settings controller and alert manager are likewise invoked through
// direct method calls (Tick, TickLCD, EvaluateAll) rather than request/
// reply, per spec §5's single-threaded-evaluator ordering guarantee. NATS
// is reserved for the external CRUD surface those same actors also serve.
package daemon
