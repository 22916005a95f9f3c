// SPDX-License-Identifier: BSD-3-Clause

package profile

import "testing"

func TestStandardFilterTempIgnoresSmallChange(t *testing.T) {
	s := NewStandardState()
	s.FilterTemp(50, 2, false)
	got := s.FilterTemp(51, 2, false)
	if got != 50 {
		t.Fatalf("got %v, want 50 (change below deviance ignored)", got)
	}
}

func TestStandardFilterTempAcceptsLargeChange(t *testing.T) {
	s := NewStandardState()
	s.FilterTemp(50, 2, false)
	got := s.FilterTemp(60, 2, false)
	if got != 60 {
		t.Fatalf("got %v, want 60 (change exceeds deviance)", got)
	}
}

func TestStandardFilterTempOnlyDownwardAllowsSmallDrop(t *testing.T) {
	s := NewStandardState()
	s.FilterTemp(50, 2, true)
	got := s.FilterTemp(49, 2, true)
	if got != 49 {
		t.Fatalf("got %v, want 49 (downward change honored under only_downward)", got)
	}
}

func TestStandardHoldDutyRequiresConsecutiveProposals(t *testing.T) {
	s := NewStandardState()

	_, ready := s.HoldDuty(80, 3)
	if ready {
		t.Fatalf("expected not ready on first proposal with response_delay=3")
	}
	_, ready = s.HoldDuty(80, 3)
	if ready {
		t.Fatalf("expected not ready on second proposal with response_delay=3")
	}
	_, ready = s.HoldDuty(80, 3)
	if !ready {
		t.Fatalf("expected ready on third consecutive proposal with response_delay=3")
	}
}

func TestStandardHoldDutyResetsOnChange(t *testing.T) {
	s := NewStandardState()
	s.HoldDuty(80, 3)
	s.HoldDuty(80, 3)
	_, ready := s.HoldDuty(90, 3)
	if ready {
		t.Fatalf("expected hold counter to reset when the proposed duty changes")
	}
}

func TestStandardHoldDutyImmediateWithoutDelay(t *testing.T) {
	s := NewStandardState()
	_, ready := s.HoldDuty(80, 0)
	if !ready {
		t.Fatalf("expected immediate readiness when response_delay <= 0")
	}
}
