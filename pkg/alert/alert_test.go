// SPDX-License-Identifier: BSD-3-Clause

package alert

import (
	"context"
	"testing"
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/state"
)

func TestNewRejectsInvertedBand(t *testing.T) {
	_, err := New("a1", "cpu high", ChannelSource{}, 70, 30, time.Second)
	if err != ErrInvalidBand {
		t.Fatalf("got %v, want ErrInvalidBand", err)
	}
}

func TestNewRejectsNegativeBound(t *testing.T) {
	_, err := New("a1", "cpu high", ChannelSource{}, -1, 30, time.Second)
	if err != ErrNegativeBound {
		t.Fatalf("got %v, want ErrNegativeBound", err)
	}
}

func TestWarmupScenario(t *testing.T) {
	ctx := context.Background()
	a, err := New("a1", "cpu high", ChannelSource{DeviceUID: "d1", ChannelName: "cpu"}, 30, 70, 3*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ev, err := NewEvaluator(ctx, a, time.Second)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	readings := []float64{75, 75, 65, 75, 75, 75}
	base := time.Unix(0, 0)

	var activatedAtTick = -1
	for i, v := range readings {
		now := base.Add(time.Duration(i) * time.Second)
		log, err := ev.Evaluate(ctx, now, v, true)
		if err != nil {
			t.Fatalf("Evaluate tick %d: %v", i, err)
		}
		if log != nil && log.NewState == state.AlertStateActive {
			activatedAtTick = i
			break
		}
	}

	if activatedAtTick != 5 {
		t.Fatalf("activated at tick %d, want tick 5", activatedAtTick)
	}
}

func TestSourceGoneTransitionsToError(t *testing.T) {
	ctx := context.Background()
	a, err := New("a1", "cpu high", ChannelSource{}, 30, 70, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ev, err := NewEvaluator(ctx, a, time.Second)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	log, err := ev.Evaluate(ctx, time.Now(), 50, false)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if log == nil || log.NewState != state.AlertStateError {
		t.Fatalf("got %v, want transition to error", log)
	}
}

func TestRecoveryFromInBand(t *testing.T) {
	ctx := context.Background()
	a, err := New("a1", "cpu high", ChannelSource{}, 30, 70, 2*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ev, err := NewEvaluator(ctx, a, time.Second)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	base := time.Now()
	// warm up to active
	ev.Evaluate(ctx, base, 90, true)
	log, err := ev.Evaluate(ctx, base.Add(time.Second), 90, true)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if log == nil || log.NewState != state.AlertStateActive {
		t.Fatalf("expected activation, got %v", log)
	}

	// warm back down to inactive
	ev.Evaluate(ctx, base.Add(2*time.Second), 50, true)
	log, err = ev.Evaluate(ctx, base.Add(3*time.Second), 50, true)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if log == nil || log.NewState != state.AlertStateInactive {
		t.Fatalf("expected recovery to inactive, got %v", log)
	}
}
