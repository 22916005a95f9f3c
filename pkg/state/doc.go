// SPDX-License-Identifier: BSD-3-Clause

// Package state provides a finite state machine wrapper, built on
// github.com/qmuntal/stateless, for components whose behavior is best
// expressed as a small number of named states and guarded transitions
// between them.
//
// # Overview
//
// This package implements finite state machines (FSMs) with the following
// key features:
//   - Thread-safe operations with read-write mutexes
//   - Distributed tracing via OpenTelemetry
//   - Configurable timeouts for state transitions
//   - Guard conditions and transition actions
//   - State entry/exit actions
//   - Persistence and broadcast callbacks invoked on every transition
//   - DOT graph generation for visualization
//   - Multi-state machine management via Manager
//
// # Core Concepts
//
// State Machine: a computational model consisting of a finite number of
// states, transitions between those states, and actions. At any given
// time, the machine is in exactly one state.
//
// State: a distinct condition the machine can be in. Each state can have
// optional entry and exit actions run when entering or leaving it.
//
// Transition: a change from one state to another, triggered by an event
// (trigger). Transitions can have guard conditions that must be satisfied
// and actions that run during the transition.
//
// # Basic Usage
//
//	config := NewConfig(
//		WithName("alert/cpu-temp"),
//		WithInitialState("inactive"),
//		WithStates(
//			StateDefinition{Name: "inactive"},
//			StateDefinition{Name: "active"},
//			StateDefinition{Name: "error"},
//		),
//		WithTransitions(
//			TransitionDefinition{From: "inactive", To: "active", Trigger: "out_of_band"},
//			TransitionDefinition{From: "active", To: "inactive", Trigger: "in_band"},
//		),
//	)
//
//	sm, err := New(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := sm.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	if err := sm.Fire(ctx, "out_of_band", nil); err != nil {
//		log.Printf("transition failed: %v", err)
//	}
//
// # Persistence and broadcast
//
// The callback set via SetBroadcastCallback runs on every successful
// transition, before Fire returns. The callback set via
// SetPersistenceCallback runs there too, and once in Start with the initial
// state, but only when the machine is configured WithPersistState(true).
// Both must be set before Start.
//
// # Multi-state machine management
//
//	manager := NewManager()
//	manager.AddStateMachine(alertSM)
//	manager.AddStateMachine(modeSM)
//
//	sm, err := manager.GetStateMachine("alert/cpu-temp")
//
// # Thread safety
//
// All state machine operations are thread-safe: multiple goroutines may
// query state, check permitted triggers, and fire transitions
// concurrently. A read-write mutex allows concurrent reads while
// serializing modifications.
package state
