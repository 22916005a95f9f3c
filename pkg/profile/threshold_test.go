// SPDX-License-Identifier: BSD-3-Clause

package profile

import "testing"

func TestThresholdScenario(t *testing.T) {
	s := NewThresholdState()

	// seed last applied = 40
	duty, apply := s.Evaluate(40, 40)
	if !apply || duty != 40 {
		t.Fatalf("seed: got (%v, %v), want (40, true)", duty, apply)
	}

	// counter 0, proposed 41 -> suppress, counter increments
	duty, apply = s.Evaluate(41, 40)
	if apply {
		t.Fatalf("expected suppression at counter 0, got apply=true")
	}
	if s.underCounter != 1 {
		t.Fatalf("counter = %d, want 1", s.underCounter)
	}
	_ = duty

	// keep proposing 41 until the flush limit is reached
	for i := 1; i < UnderThresholdFlushLimit; i++ {
		s.Evaluate(41, 40)
	}
	if s.underCounter != UnderThresholdFlushLimit {
		t.Fatalf("counter = %d before final tick, want %d", s.underCounter, UnderThresholdFlushLimit)
	}

	duty, apply = s.Evaluate(41, 40)
	if !apply || duty != 41 {
		t.Fatalf("at flush limit: got (%v, %v), want (41, true)", duty, apply)
	}
}

func TestThresholdFlushesLargeChangeImmediately(t *testing.T) {
	s := NewThresholdState()
	s.Evaluate(40, 40)

	duty, apply := s.Evaluate(70, 40)
	if !apply || duty != 70 {
		t.Fatalf("got (%v, %v), want (70, true) for a large jump", duty, apply)
	}
}

func TestThresholdWindowCapped(t *testing.T) {
	s := NewThresholdState()
	for i := 0; i < MaxThresholdWindow+10; i++ {
		s.Evaluate(float64(i*10), float64(i*10))
	}
	if len(s.Window()) > MaxThresholdWindow {
		t.Fatalf("window len = %d, want <= %d", len(s.Window()), MaxThresholdWindow)
	}
}

func TestThresholdSwitchesToObservedAfterSuppression(t *testing.T) {
	s := NewThresholdState()
	s.Evaluate(40, 40)

	s.Evaluate(41, 40) // 1st suppressed tick
	s.Evaluate(41, 45) // 2nd suppressed tick; comparator should now switch to observed

	if !s.useObserved {
		t.Fatalf("expected comparator to switch to observed duty after %d suppressed ticks", MaxUnderThresholdCurrentDutyCounter)
	}
}
