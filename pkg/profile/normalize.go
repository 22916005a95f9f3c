// SPDX-License-Identifier: BSD-3-Clause

package profile

import "sort"

// Normalize turns a user-authored speed profile into a strictly-increasing
// step function ending at maxDuty, per spec §4.5:
//
//  1. append a critical-temperature anchor (criticalTemp, maxDuty)
//  2. sort by (temp asc, duty desc)
//  3. deduplicate by temperature, keeping the highest duty at each temp
//  4. enforce monotonic non-decreasing duty: duty[i] = max(duty[i-1], duty[i])
//  5. clamp duty <= maxDuty
//  6. truncate the tail after the first duty == maxDuty
//
// Normalize is idempotent: Normalize(Normalize(p, c, m), c, m) == Normalize(p, c, m).
func Normalize(points []Point, criticalTemp, maxDuty float64) ([]Point, error) {
	if len(points) == 0 {
		return nil, ErrEmptySpeedProfile
	}

	working := make([]Point, len(points), len(points)+1)
	copy(working, points)
	working = append(working, Point{Temp: criticalTemp, Duty: maxDuty})

	sort.SliceStable(working, func(i, j int) bool {
		if working[i].Temp != working[j].Temp {
			return working[i].Temp < working[j].Temp
		}
		return working[i].Duty > working[j].Duty
	})

	deduped := make([]Point, 0, len(working))
	for _, p := range working {
		if n := len(deduped); n > 0 && deduped[n-1].Temp == p.Temp {
			continue // already holds the highest duty at this temp
		}
		deduped = append(deduped, p)
	}

	for i := range deduped {
		if deduped[i].Duty > maxDuty {
			deduped[i].Duty = maxDuty
		}
		if i > 0 && deduped[i].Duty < deduped[i-1].Duty {
			deduped[i].Duty = deduped[i-1].Duty
		}
	}

	for i, p := range deduped {
		if p.Duty == maxDuty {
			return deduped[:i+1], nil
		}
	}
	return deduped, nil
}
