// SPDX-License-Identifier: BSD-3-Clause

package profile

import "testing"

func TestTriangularMovingAverageConvergesWithinEightTicks(t *testing.T) {
	var samples []float64
	const target = 42.0

	for i := 0; i < 8; i++ {
		samples = append(samples, target)
	}

	got := TriangularMovingAverage(samples, DefaultEMAWindow)
	if got != target {
		t.Fatalf("after 8 identical ticks got %v, want %v", got, target)
	}
}

func TestTriangularMovingAverageWindowCappedAtSixteen(t *testing.T) {
	samples := make([]float64, 20)
	for i := range samples {
		samples[i] = float64(i)
	}
	got := TriangularMovingAverage(samples, 100)
	// window clamps to 16, so only the last 16 samples (4..19) participate;
	// the result must stay within that sub-range.
	if got < 4 || got > 19 {
		t.Fatalf("got %v, want a value within the last 16 samples' range", got)
	}
}

func TestTriangularMovingAverageSingleSample(t *testing.T) {
	got := TriangularMovingAverage([]float64{33.333}, DefaultEMAWindow)
	if got != 33.33 {
		t.Fatalf("got %v, want 33.33 (rounded to two decimals)", got)
	}
}

func TestTriangularMovingAverageEmpty(t *testing.T) {
	if got := TriangularMovingAverage(nil, DefaultEMAWindow); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}
