// SPDX-License-Identifier: BSD-3-Clause

package settingsctl

import (
	"context"

	"github.com/coolercontrol/coolercontrold/pkg/profile"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// Tick evaluates every profile-driven scheduled setting once, running the
// function pipeline and the duty-threshold post-processor, and dispatches
// a duty write for each channel the post-processor clears (spec §4.5,
// §4.6).
func (c *Controller) Tick(ctx context.Context) {
	c.mu.Lock()
	type work struct {
		deviceUID, channelName string
		entry                  *scheduledEntry
	}
	items := make([]work, 0)
	for deviceUID, channels := range c.scheduled {
		for channelName, e := range channels {
			items = append(items, work{deviceUID, channelName, e})
		}
	}
	c.mu.Unlock()

	for _, w := range items {
		c.tickOne(ctx, w.deviceUID, w.channelName, w.entry)
	}
}

func (c *Controller) tickOne(ctx context.Context, deviceUID, channelName string, e *scheduledEntry) {
	if e.setting.ProfileUID == nil {
		return
	}
	c.mu.Lock()
	p, ok := c.profiles[*e.setting.ProfileUID]
	c.mu.Unlock()
	if !ok {
		return
	}

	proposed, ok := c.resolveProfileDuty(p, e.pipeline, e.normalized)
	if !ok {
		return
	}

	observed := proposed
	if dev, ok := c.lookup(deviceUID); ok {
		if st, ok := dev.Latest(); ok {
			if cs, ok := st.ChannelByName(channelName); ok && cs.DutyPercent != nil {
				observed = *cs.DutyPercent
			}
		}
	}

	duty, apply := e.pipeline.threshold.Evaluate(proposed, observed)
	if !apply {
		return
	}
	if err := c.apply(ctx, deviceUID, channelName, repository.Setting{FixedDuty: &duty}); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "settings apply failed", "device", deviceUID, "channel", channelName, "error", err)
	}
}

// resolveProfileDuty recursively resolves p's duty, threading pipe (the
// parent schedule's per-channel state) and normalized (every Graph
// profile's precomputed step function, keyed by profile UID) through Mix
// member evaluation.
func (c *Controller) resolveProfileDuty(p profile.Profile, pipe *pipelineState, normalized map[string][]profile.Point) (float64, bool) {
	switch p.Kind {
	case profile.KindFixed:
		if p.FixedDuty == nil {
			return 0, false
		}
		return *p.FixedDuty, true

	case profile.KindDefault:
		return 0, false

	case profile.KindGraph:
		norm, ok := normalized[p.UID]
		if !ok {
			return 0, false
		}
		raw, ok := c.rawTemp(*p.TempSource)
		if !ok {
			return 0, false
		}
		fn := c.functionFor(p.FunctionUID)
		filtered := c.applyFunction(fn, p.UID, pipe, raw)
		duty, err := profile.Interpolate(norm, filtered)
		if err != nil {
			return 0, false
		}
		if fn.Kind == profile.FunctionStandard {
			st := pipe.std[p.UID]
			held, ready := st.HoldDuty(duty, fn.ResponseDelay)
			if !ready {
				return 0, false
			}
			duty = held
		}
		return fn.Clamp(duty), true

	case profile.KindMix:
		if p.MixFunction == nil {
			return 0, false
		}
		duties := make([]float64, 0, len(p.MemberProfileUIDs))
		for _, uid := range p.MemberProfileUIDs {
			c.mu.Lock()
			mp, ok := c.profiles[uid]
			c.mu.Unlock()
			if !ok {
				continue
			}
			d, ok := c.resolveProfileDuty(mp, pipe, normalized)
			if !ok {
				continue
			}
			duties = append(duties, d)
		}
		if len(duties) == 0 {
			return 0, false
		}
		duty, err := profile.ReduceMix(*p.MixFunction, duties)
		if err != nil {
			return 0, false
		}
		return duty, true

	default:
		return 0, false
	}
}

func (c *Controller) rawTemp(ts profile.TempSource) (float64, bool) {
	dev, ok := c.lookup(ts.DeviceUID)
	if !ok {
		return 0, false
	}
	st, ok := dev.Latest()
	if !ok {
		return 0, false
	}
	return st.TempByChannel(ts.ChannelName)
}

// applyFunction runs fn's pre-processor over raw, keyed by key so a Mix's
// members each keep independent EMA/Standard state.
func (c *Controller) applyFunction(fn profile.Function, key string, pipe *pipelineState, raw float64) float64 {
	switch fn.Kind {
	case profile.FunctionExponentialMovingAvg:
		samples := append(pipe.ema[key], raw)
		if len(samples) > profile.MaxEMASamples {
			samples = samples[len(samples)-profile.MaxEMASamples:]
		}
		pipe.ema[key] = samples
		return profile.TriangularMovingAverage(samples, fn.SampleWindow)
	case profile.FunctionStandard:
		st, ok := pipe.std[key]
		if !ok {
			st = profile.NewStandardState()
			pipe.std[key] = st
		}
		return st.FilterTemp(raw, fn.Deviance, fn.OnlyDownward)
	default:
		return raw
	}
}
