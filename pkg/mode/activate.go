// SPDX-License-Identifier: BSD-3-Clause

package mode

import (
	"context"
	"fmt"

	"github.com/coolercontrol/coolercontrold/pkg/state"
)

// ApplyFunc applies one captured setting to a device channel, typically
// service/settingsctl's Controller.ApplyModeEntry.
type ApplyFunc func(ctx context.Context, deviceUID, channelName string, entry Entry) error

// ApplyResult records the outcome of applying one Entry during activation.
type ApplyResult struct {
	Entry Entry
	Err   error
}

// Activator drives one Mode's activation state machine. Activation applies
// every captured setting; partial failures are reported in the returned
// ApplyResults and the remaining entries still apply (spec §4.8) — "atomic" here means the caller sees
// one activation operation, not that a failure rolls back prior writes.
type Activator struct {
	mode    *Mode
	machine *state.FSM
	inFlight bool
}

// NewActivator builds an Activator for mode, rejecting concurrent
// activations of the same Mode via a guard on the underlying machine.
func NewActivator(ctx context.Context, m *Mode) (*Activator, error) {
	a := &Activator{mode: m}

	sm, err := state.NewModeBuilder("mode/"+m.UID).
		WithActivationGuard(func(context.Context) bool { return !a.inFlight }).
		Build()
	if err != nil {
		return nil, err
	}
	if err := sm.Start(ctx); err != nil {
		return nil, err
	}
	a.machine = sm
	return a, nil
}

// State returns the Activator's current FSM state.
func (a *Activator) State() string {
	return a.machine.CurrentState()
}

// Activate applies every entry in the Mode's snapshot via apply, in a
// single batch. It returns one ApplyResult per entry in snapshot order.
func (a *Activator) Activate(ctx context.Context, apply ApplyFunc) ([]ApplyResult, error) {
	trigger := state.ModeTriggerActivate
	if a.machine.CurrentState() != state.ModeActivationStateIdle {
		trigger = state.ModeTriggerReactivate
	}
	if err := a.machine.Fire(ctx, trigger, nil); err != nil {
		return nil, fmt.Errorf("activation rejected: %w", err)
	}
	a.inFlight = true
	defer func() { a.inFlight = false }()

	entries := a.mode.Entries()
	results := make([]ApplyResult, 0, len(entries))
	failures := 0

	for _, e := range entries {
		err := apply(ctx, e.DeviceUID, e.ChannelName, e)
		results = append(results, ApplyResult{Entry: e, Err: err})
		if err != nil {
			failures++
		}
	}

	if failures > 0 {
		if err := a.machine.Fire(ctx, state.ModeTriggerSomeFailed, nil); err != nil {
			return results, err
		}
	} else {
		if err := a.machine.Fire(ctx, state.ModeTriggerAllApplied, nil); err != nil {
			return results, err
		}
	}

	return results, nil
}
