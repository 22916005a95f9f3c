// SPDX-License-Identifier: BSD-3-Clause

package customsensor

import "github.com/coolercontrol/coolercontrold/pkg/profile"

// Kind identifies how a CustomSensor derives its temperature.
type Kind string

const (
	KindMix  Kind = "mix"
	KindFile Kind = "file"
)

// MixFunction identifies how a Mix custom sensor combines its sources.
// Unlike a Mix Profile (pkg/profile), a custom sensor also supports Delta
// and WeightedAvg (spec §3).
type MixFunction string

const (
	MixMin         MixFunction = "min"
	MixMax         MixFunction = "max"
	MixAvg         MixFunction = "avg"
	MixDelta       MixFunction = "delta"
	MixWeightedAvg MixFunction = "weighted_avg"
)

// MaxWeight is the upper bound of a WeightedAvg source's Weight, per spec
// §4.4 (wᵢ ∈ [0,254]).
const MaxWeight = 254

// Source is one weighted temperature input to a Mix custom sensor.
type Source struct {
	TempSource profile.TempSource
	Weight     float64
}

// CustomSensor is the synthetic temperature source of spec §3.
type CustomSensor struct {
	ID          string
	Kind        Kind
	MixFunction MixFunction
	Sources     []Source
	FilePath    string
}

// Validate enforces the per-kind invariants of spec §3: Mix sensors
// cannot carry a file path; File sensors must carry a path and no
// sources.
func (c CustomSensor) Validate() error {
	switch c.Kind {
	case KindMix:
		if c.FilePath != "" {
			return ErrMixCannotHaveFilePath
		}
		if len(c.Sources) == 0 {
			return ErrMixRequiresSources
		}
		if c.MixFunction == MixWeightedAvg {
			for _, s := range c.Sources {
				if s.Weight < 0 || s.Weight > MaxWeight {
					return ErrWeightOutOfRange
				}
			}
		}
	case KindFile:
		if c.FilePath == "" {
			return ErrFileRequiresPath
		}
		if len(c.Sources) != 0 {
			return ErrFileCannotHaveSources
		}
	}
	return nil
}

// Reduce combines resolved source readings per c.MixFunction. readings
// must be in the same order as c.Sources when MixFunction is WeightedAvg.
func (c CustomSensor) Reduce(readings []float64) (float64, error) {
	if len(readings) == 0 {
		return 0, ErrMixRequiresSources
	}

	switch c.MixFunction {
	case MixMin:
		m := readings[0]
		for _, v := range readings[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	case MixMax:
		m := readings[0]
		for _, v := range readings[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	case MixAvg:
		var sum float64
		for _, v := range readings {
			sum += v
		}
		return sum / float64(len(readings)), nil
	case MixDelta:
		lo, hi := readings[0], readings[0]
		for _, v := range readings[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		return hi - lo, nil
	case MixWeightedAvg:
		if len(readings) != len(c.Sources) {
			return 0, ErrMixRequiresSources
		}
		var weightedSum, weightSum float64
		for i, v := range readings {
			w := c.Sources[i].Weight
			weightedSum += v * w
			weightSum += w
		}
		if weightSum == 0 {
			// All sources carry a zero weight: spec §4.4 defines this as a
			// valid reading of 0, not an error.
			return 0, nil
		}
		return weightedSum / weightSum, nil
	default:
		return 0, ErrInvalidMixFunction
	}
}
