// SPDX-License-Identifier: BSD-3-Clause

package alert

import (
	"context"
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/state"
)

// ChannelSource identifies the channel an Alert observes.
type ChannelSource struct {
	DeviceUID   string
	ChannelName string
}

// Alert is the band-observation rule of spec §3.
type Alert struct {
	UID            string
	Name           string
	ChannelSource  ChannelSource
	Min            float64
	Max            float64
	WarmupDuration time.Duration
}

// New validates and constructs an Alert.
func New(uid, name string, source ChannelSource, min, max float64, warmup time.Duration) (Alert, error) {
	if name == "" {
		return Alert{}, ErrEmptyName
	}
	if min < 0 || max < 0 {
		return Alert{}, ErrNegativeBound
	}
	if max <= min {
		return Alert{}, ErrInvalidBand
	}
	if warmup < 0 {
		return Alert{}, ErrNegativeWarmup
	}
	return Alert{
		UID:            uid,
		Name:           name,
		ChannelSource:  source,
		Min:            min,
		Max:            max,
		WarmupDuration: warmup,
	}, nil
}

// InBand reports whether value falls within [Min, Max].
func (a Alert) InBand(value float64) bool {
	return value >= a.Min && value <= a.Max
}

// Log is an immutable record of one Alert state transition, per spec §4.7.
type Log struct {
	Timestamp time.Time
	AlertUID  string
	NewState  string
	Value     float64
}

// Evaluator tracks one Alert's streak timer and wraps the Inactive/Active/
// Error machine from pkg/state. It is not safe for concurrent use; the
// owning controller serializes calls to Evaluate per tick.
type Evaluator struct {
	alert        Alert
	tickInterval time.Duration
	machine      *state.FSM

	oobStreakTicks int
	inBandStreakTicks int
}

// NewEvaluator builds an Evaluator for alert, ticking at tickInterval
// (the main loop's tick period; defaults to 1s if zero or negative).
func NewEvaluator(ctx context.Context, a Alert, tickInterval time.Duration) (*Evaluator, error) {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}

	sm, err := state.NewAlertStateMachine("alert/" + a.UID)
	if err != nil {
		return nil, err
	}
	if err := sm.Start(ctx); err != nil {
		return nil, err
	}

	return &Evaluator{
		alert:        a,
		tickInterval: tickInterval,
		machine:      sm,
	}, nil
}

// State returns the Evaluator's current FSM state.
func (e *Evaluator) State() string {
	return e.machine.CurrentState()
}

// Evaluate processes one tick's reading for this alert's channel source.
// sourceAvailable is false when the device or channel has disappeared. It
// returns a non-nil Log exactly when a state transition occurred.
func (e *Evaluator) Evaluate(ctx context.Context, now time.Time, value float64, sourceAvailable bool) (*Log, error) {
	if !sourceAvailable {
		if e.machine.IsInState(state.AlertStateError) {
			return nil, nil
		}
		if err := e.machine.Fire(ctx, state.AlertTriggerSourceGone, nil); err != nil {
			return nil, err
		}
		e.resetStreaks()
		return &Log{Timestamp: now, AlertUID: e.alert.UID, NewState: state.AlertStateError, Value: value}, nil
	}

	if e.machine.IsInState(state.AlertStateError) {
		if err := e.machine.Fire(ctx, state.AlertTriggerSourceRestored, nil); err != nil {
			return nil, err
		}
		e.resetStreaks()
		return &Log{Timestamp: now, AlertUID: e.alert.UID, NewState: state.AlertStateInactive, Value: value}, nil
	}

	inBand := e.alert.InBand(value)
	if inBand {
		e.oobStreakTicks = 0
		e.inBandStreakTicks++
	} else {
		e.inBandStreakTicks = 0
		e.oobStreakTicks++
	}

	switch {
	case e.machine.IsInState(state.AlertStateInactive) && !inBand:
		if e.accumulated(e.oobStreakTicks) >= e.alert.WarmupDuration {
			if err := e.machine.Fire(ctx, state.AlertTriggerOutOfBandWarmedUp, nil); err != nil {
				return nil, err
			}
			return &Log{Timestamp: now, AlertUID: e.alert.UID, NewState: state.AlertStateActive, Value: value}, nil
		}
	case e.machine.IsInState(state.AlertStateActive) && inBand:
		if e.accumulated(e.inBandStreakTicks) >= e.alert.WarmupDuration {
			if err := e.machine.Fire(ctx, state.AlertTriggerInBandWarmedUp, nil); err != nil {
				return nil, err
			}
			return &Log{Timestamp: now, AlertUID: e.alert.UID, NewState: state.AlertStateInactive, Value: value}, nil
		}
	}

	return nil, nil
}

func (e *Evaluator) accumulated(ticks int) time.Duration {
	return time.Duration(ticks) * e.tickInterval
}

func (e *Evaluator) resetStreaks() {
	e.oobStreakTicks = 0
	e.inBandStreakTicks = 0
}
