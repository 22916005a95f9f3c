// SPDX-License-Identifier: BSD-3-Clause

package sleepwatch

import "sync"

// State tracks whether the system is currently suspended and whether a
// resume has occurred that the main loop has not yet consumed. It is the
// pure core of the sleep listener (spec §4.9 steps 1-2): the D-Bus
// PrepareForSleep signal, with its boolean payload, drives HandleSignal;
// the main loop drives SuspendPending/ConsumeResume once per tick.
type State struct {
	mu       sync.Mutex
	sleeping bool
	resumed  bool
}

// New constructs a State that starts awake.
func New() *State {
	return &State{}
}

// HandleSignal records a PrepareForSleep(sleeping) signal. sleeping=true
// means the system is about to suspend; sleeping=false means it just woke.
func (s *State) HandleSignal(sleeping bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasSleeping := s.sleeping
	s.sleeping = sleeping
	if wasSleeping && !sleeping {
		s.resumed = true
	}
}

// SuspendPending reports whether the system is currently suspended (spec
// §4.9 step 1: "if a suspend signal is pending, skip the tick").
func (s *State) SuspendPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sleeping
}

// ConsumeResume reports, exactly once per resume event, that the system
// just woke up (spec §4.9 step 2). Subsequent calls return false until the
// next suspend/resume cycle.
func (s *State) ConsumeResume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resumed {
		return false
	}
	s.resumed = false
	return true
}
