// SPDX-License-Identifier: BSD-3-Clause

package profile

// MaxThresholdWindow bounds the sliding history of applied duties per
// channel, per spec §4.5.
const MaxThresholdWindow = 20

// UnderThresholdFlushLimit is the under-threshold counter ceiling: once
// reached, a proposed duty is flushed through even inside the deadband, to
// prevent long-term drift.
const UnderThresholdFlushLimit = 5

// MaxUnderThresholdCurrentDutyCounter is the number of consecutive
// suppressed ticks after which the comparator switches from the
// last-applied value to the actually observed device duty.
const MaxUnderThresholdCurrentDutyCounter = 2

// ThresholdDeadband is the maximum |proposed - reference| that may still
// be suppressed.
const ThresholdDeadband = 2.0

// ThresholdState is the per-channel memory of the duty-threshold
// post-processor, spec §4.5 item 4.
type ThresholdState struct {
	window       []float64
	haveLast     bool
	lastApplied  float64
	underCounter int
	sinceSwitch  int
	useObserved  bool
}

// NewThresholdState returns a fresh, empty threshold state.
func NewThresholdState() *ThresholdState {
	return &ThresholdState{}
}

// Evaluate decides whether a proposed duty should be written to the
// device. observedCurrent is the duty last read back from hardware; it is
// only consulted once the comparator has switched away from last_applied.
// Returns the duty to report and whether it should actually be applied.
func (s *ThresholdState) Evaluate(proposed, observedCurrent float64) (duty float64, apply bool) {
	if !s.haveLast {
		s.commit(proposed)
		return proposed, true
	}

	reference := s.lastApplied
	if s.useObserved {
		reference = observedCurrent
	}

	delta := proposed - reference
	if delta < 0 {
		delta = -delta
	}

	if delta <= ThresholdDeadband && s.underCounter < UnderThresholdFlushLimit {
		s.underCounter++
		s.sinceSwitch++
		if s.sinceSwitch >= MaxUnderThresholdCurrentDutyCounter {
			s.useObserved = true
			s.sinceSwitch = 0
		}
		return proposed, false
	}

	s.commit(proposed)
	return proposed, true
}

func (s *ThresholdState) commit(duty float64) {
	s.haveLast = true
	s.lastApplied = duty
	s.underCounter = 0
	s.sinceSwitch = 0
	s.useObserved = false

	s.window = append(s.window, duty)
	if len(s.window) > MaxThresholdWindow {
		s.window = s.window[len(s.window)-MaxThresholdWindow:]
	}
}

// Window returns the sliding history of committed duties, oldest first.
func (s *ThresholdState) Window() []float64 {
	out := make([]float64, len(s.window))
	copy(out, s.window)
	return out
}
