// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"context"
	"time"
)

// NewStateMachine creates a basic state machine with the provided configuration.
func NewStateMachine(opts ...Option) (*FSM, error) {
	config := NewConfig(opts...)
	return New(config)
}

// AlertState names the three states an Alert can be in, per spec §3.
const (
	AlertStateInactive = "inactive"
	AlertStateActive   = "active"
	AlertStateError    = "error"
)

// Alert triggers, fired on every status commit that concerns an alert's
// channel source.
const (
	AlertTriggerOutOfBandWarmedUp = "out_of_band_warmed_up"
	AlertTriggerInBandWarmedUp    = "in_band_warmed_up"
	AlertTriggerSourceGone        = "source_gone"
	AlertTriggerSourceRestored    = "source_restored"
)

// NewAlertStateMachine builds the Inactive/Active/Error state machine for
// one Alert (spec §3, §4.7). The warmup streak timer itself lives in
// pkg/alert; this machine only records the already-debounced transition.
func NewAlertStateMachine(name string, opts ...Option) (*FSM, error) {
	baseOpts := []Option{
		WithName(name),
		WithDescription("alert band state machine"),
		WithInitialState(AlertStateInactive),
		WithStates(
			StateDefinition{Name: AlertStateInactive},
			StateDefinition{Name: AlertStateActive},
			StateDefinition{Name: AlertStateError},
		),
		WithTransitions(
			TransitionDefinition{From: AlertStateInactive, To: AlertStateActive, Trigger: AlertTriggerOutOfBandWarmedUp},
			TransitionDefinition{From: AlertStateActive, To: AlertStateInactive, Trigger: AlertTriggerInBandWarmedUp},
			TransitionDefinition{From: AlertStateInactive, To: AlertStateError, Trigger: AlertTriggerSourceGone},
			TransitionDefinition{From: AlertStateActive, To: AlertStateError, Trigger: AlertTriggerSourceGone},
			TransitionDefinition{From: AlertStateError, To: AlertStateInactive, Trigger: AlertTriggerSourceRestored},
		),
		WithStateTimeout(5 * time.Second),
	}

	allOpts := append(baseOpts, opts...)
	return NewStateMachine(allOpts...)
}

// ModeActivationState names the states a Mode passes through while its
// captured settings are being applied (spec §4.8).
const (
	ModeActivationStateIdle     = "idle"
	ModeActivationStateApplying = "applying"
	ModeActivationStateApplied  = "applied"
	ModeActivationStateDegraded = "degraded" // one or more settings failed to apply
)

// Mode activation triggers.
const (
	ModeTriggerActivate   = "activate"
	ModeTriggerAllApplied = "all_applied"
	ModeTriggerSomeFailed = "some_failed"
	ModeTriggerReactivate = "reactivate"
)

// ModeBuilder provides a fluent interface for building a mode-activation
// state machine with optional guards over whether activation may proceed.
type ModeBuilder struct {
	name        string
	opts        []Option
	canActivate func(ctx context.Context) bool
	onApplied   func(ctx context.Context, from, to string) error
}

// NewModeBuilder creates a new mode-activation state machine builder.
func NewModeBuilder(name string) *ModeBuilder {
	return &ModeBuilder{name: name}
}

// WithActivationGuard restricts when activation may begin, e.g. to reject
// activating a Mode while another activation is already in flight.
func (b *ModeBuilder) WithActivationGuard(guard func(ctx context.Context) bool) *ModeBuilder {
	b.canActivate = guard
	return b
}

// WithAppliedAction runs when every captured setting in the Mode has
// applied successfully.
func (b *ModeBuilder) WithAppliedAction(action func(ctx context.Context, from, to string) error) *ModeBuilder {
	b.onApplied = action
	return b
}

// WithPersistState enables persistence-callback invocation on transitions.
func (b *ModeBuilder) WithPersistState(persist bool) *ModeBuilder {
	b.opts = append(b.opts, WithPersistState(persist))
	return b
}

// WithTracing enables OpenTelemetry spans around transitions.
func (b *ModeBuilder) WithTracing(enabled bool) *ModeBuilder {
	b.opts = append(b.opts, WithTracing(enabled))
	return b
}

// Build creates the configured mode-activation state machine.
func (b *ModeBuilder) Build() (*FSM, error) {
	opts := []Option{
		WithName(b.name),
		WithDescription("mode activation state machine"),
		WithInitialState(ModeActivationStateIdle),
		WithStates(
			StateDefinition{Name: ModeActivationStateIdle},
			StateDefinition{Name: ModeActivationStateApplying},
			StateDefinition{Name: ModeActivationStateApplied},
			StateDefinition{Name: ModeActivationStateDegraded},
		),
		WithStateTimeout(10 * time.Second),
	}

	activate := TransitionDefinition{From: ModeActivationStateIdle, To: ModeActivationStateApplying, Trigger: ModeTriggerActivate}
	if b.canActivate != nil {
		activate.Guard = b.canActivate
	}

	applied := TransitionDefinition{From: ModeActivationStateApplying, To: ModeActivationStateApplied, Trigger: ModeTriggerAllApplied}
	if b.onApplied != nil {
		applied.Action = b.onApplied
	}

	opts = append(opts, WithTransitions(
		activate,
		applied,
		TransitionDefinition{From: ModeActivationStateApplying, To: ModeActivationStateDegraded, Trigger: ModeTriggerSomeFailed},
		TransitionDefinition{From: ModeActivationStateApplied, To: ModeActivationStateApplying, Trigger: ModeTriggerReactivate},
		TransitionDefinition{From: ModeActivationStateDegraded, To: ModeActivationStateApplying, Trigger: ModeTriggerReactivate},
	))

	opts = append(opts, b.opts...)

	return NewStateMachine(opts...)
}
