// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"context"
	"testing"
)

func TestAlertStateMachineTransitions(t *testing.T) {
	sm, err := NewAlertStateMachine("alert/test")
	if err != nil {
		t.Fatalf("NewAlertStateMachine: %v", err)
	}

	ctx := context.Background()
	if err := sm.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !sm.IsInState(AlertStateInactive) {
		t.Fatalf("expected initial state %s, got %s", AlertStateInactive, sm.CurrentState())
	}

	if err := sm.Fire(ctx, AlertTriggerOutOfBandWarmedUp, nil); err != nil {
		t.Fatalf("Fire out_of_band_warmed_up: %v", err)
	}
	if !sm.IsInState(AlertStateActive) {
		t.Fatalf("expected %s, got %s", AlertStateActive, sm.CurrentState())
	}

	if err := sm.Fire(ctx, AlertTriggerSourceGone, nil); err != nil {
		t.Fatalf("Fire source_gone: %v", err)
	}
	if !sm.IsInState(AlertStateError) {
		t.Fatalf("expected %s, got %s", AlertStateError, sm.CurrentState())
	}

	if err := sm.Fire(ctx, AlertTriggerOutOfBandWarmedUp, nil); err == nil {
		t.Fatalf("expected error firing an out-of-state trigger from %s", AlertStateError)
	}
}

func TestModeBuilderActivationGuard(t *testing.T) {
	allow := false
	sm, err := NewModeBuilder("mode/test").
		WithActivationGuard(func(context.Context) bool { return allow }).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx := context.Background()
	if err := sm.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := sm.Fire(ctx, ModeTriggerActivate, nil); err == nil {
		t.Fatalf("expected guard to reject activation")
	}

	allow = true
	if err := sm.Fire(ctx, ModeTriggerActivate, nil); err != nil {
		t.Fatalf("expected guard to allow activation once true: %v", err)
	}
	if !sm.IsInState(ModeActivationStateApplying) {
		t.Fatalf("expected %s, got %s", ModeActivationStateApplying, sm.CurrentState())
	}
}
