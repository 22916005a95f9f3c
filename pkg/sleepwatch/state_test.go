// SPDX-License-Identifier: BSD-3-Clause

package sleepwatch

import "testing"

func TestSuspendPendingTracksSleepSignal(t *testing.T) {
	s := New()
	if s.SuspendPending() {
		t.Fatal("new State should not report suspend pending")
	}
	s.HandleSignal(true)
	if !s.SuspendPending() {
		t.Fatal("expected suspend pending after sleeping signal")
	}
}

func TestConsumeResumeFiresOnceAfterResume(t *testing.T) {
	s := New()
	s.HandleSignal(true)
	s.HandleSignal(false)

	if s.SuspendPending() {
		t.Fatal("suspend should no longer be pending after resume signal")
	}
	if !s.ConsumeResume() {
		t.Fatal("expected ConsumeResume to report true once after resume")
	}
	if s.ConsumeResume() {
		t.Fatal("ConsumeResume should not fire twice for the same resume")
	}
}

func TestResumeWithoutPriorSleepDoesNothing(t *testing.T) {
	s := New()
	s.HandleSignal(false)
	if s.ConsumeResume() {
		t.Fatal("a resume signal with no prior sleep should not be recorded")
	}
}
