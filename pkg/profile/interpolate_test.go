// SPDX-License-Identifier: BSD-3-Clause

package profile

import "testing"

func TestInterpolateScenario(t *testing.T) {
	p := []Point{{20, 50}, {50, 70}, {60, 100}}
	got, err := Interpolate(p, 33.0)
	if err != nil {
		t.Fatalf("Interpolate returned error: %v", err)
	}
	if got != 59 {
		t.Fatalf("got %v, want 59", got)
	}
}

func TestInterpolateExactStep(t *testing.T) {
	p := []Point{{20, 50}, {50, 70}, {60, 100}}
	got, err := Interpolate(p, 50)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if got != 70 {
		t.Fatalf("got %v, want 70", got)
	}
}

func TestInterpolateBelowRange(t *testing.T) {
	p := []Point{{20, 50}, {50, 70}}
	got, err := Interpolate(p, 5)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if got != 50 {
		t.Fatalf("got %v, want 50 (clamp to first step)", got)
	}
}

func TestInterpolateAboveRange(t *testing.T) {
	p := []Point{{20, 50}, {50, 70}}
	got, err := Interpolate(p, 90)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if got != 70 {
		t.Fatalf("got %v, want 70 (clamp to last step)", got)
	}
}

func TestInterpolateMonotonic(t *testing.T) {
	p := []Point{{25, 25}, {30, 40}, {35, 40}, {40, 80}, {60, 100}}
	last := -1.0
	for temp := 0.0; temp <= 70; temp += 0.5 {
		got, err := Interpolate(p, temp)
		if err != nil {
			t.Fatalf("Interpolate(%v): %v", temp, err)
		}
		if got < last {
			t.Fatalf("not monotonic at temp=%v: got %v after %v", temp, got, last)
		}
		last = got
	}
}

func TestInterpolateEmptyRejected(t *testing.T) {
	if _, err := Interpolate(nil, 10); err != ErrEmptySpeedProfile {
		t.Fatalf("got %v, want ErrEmptySpeedProfile", err)
	}
}
