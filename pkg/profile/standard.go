// SPDX-License-Identifier: BSD-3-Clause

package profile

// StandardState holds the per-channel memory the Standard function needs
// across ticks: the last temperature it let through its deviance filter,
// and the proposed duty it is waiting to confirm under response_delay.
type StandardState struct {
	haveTemp    bool
	lastTemp    float64
	pendingDuty float64
	pendingTemp float64
	holdTicks   int
}

// NewStandardState returns a zero-valued Standard function state.
func NewStandardState() *StandardState {
	return &StandardState{}
}

// FilterTemp applies the deviance rule of spec §4.5: a temperature change
// smaller than deviance is ignored and the previous effective temperature
// is returned instead, unless onlyDownward is set and the new reading is
// both lower than the last effective temperature and the change direction
// matches (i.e. it is moving down).
func (s *StandardState) FilterTemp(reading float64, deviance float64, onlyDownward bool) float64 {
	if !s.haveTemp {
		s.haveTemp = true
		s.lastTemp = reading
		return reading
	}

	delta := reading - s.lastTemp
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	if abs < deviance {
		if onlyDownward && delta < 0 {
			s.lastTemp = reading
			return reading
		}
		return s.lastTemp
	}

	s.lastTemp = reading
	return reading
}

// HoldDuty applies the response_delay rule of spec §4.5: a proposed duty
// must be proposed again on every tick for responseDelay consecutive ticks
// before it is reported out. A change in the proposed value resets the
// hold counter. responseDelay <= 0 reports immediately.
func (s *StandardState) HoldDuty(proposed float64, responseDelay int) (duty float64, ready bool) {
	if responseDelay <= 0 {
		return proposed, true
	}

	if s.holdTicks == 0 || s.pendingDuty != proposed {
		s.pendingDuty = proposed
		s.holdTicks = 1
		return proposed, s.holdTicks >= responseDelay
	}

	s.holdTicks++
	return proposed, s.holdTicks >= responseDelay
}
