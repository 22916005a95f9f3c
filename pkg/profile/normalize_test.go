// SPDX-License-Identifier: BSD-3-Clause

package profile

import "testing"

func TestNormalizeScenario(t *testing.T) {
	in := []Point{{30, 40}, {25, 25}, {35, 30}, {40, 35}, {40, 80}}
	got, err := Normalize(in, 60, 100)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	want := []Point{{25, 25}, {30, 40}, {35, 40}, {40, 80}, {60, 100}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := []Point{{30, 40}, {25, 25}, {35, 30}, {40, 35}, {40, 80}}
	once, err := Normalize(in, 60, 100)
	if err != nil {
		t.Fatalf("first Normalize: %v", err)
	}
	twice, err := Normalize(once, 60, 100)
	if err != nil {
		t.Fatalf("second Normalize: %v", err)
	}
	if len(once) != len(twice) {
		t.Fatalf("not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("not idempotent: %v vs %v", once, twice)
		}
	}
}

func TestNormalizeEmptyRejected(t *testing.T) {
	if _, err := Normalize(nil, 60, 100); err != ErrEmptySpeedProfile {
		t.Fatalf("got %v, want ErrEmptySpeedProfile", err)
	}
}

func TestNormalizeEndsAtMaxDuty(t *testing.T) {
	got, err := Normalize([]Point{{20, 10}}, 60, 100)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got[len(got)-1].Duty != 100 {
		t.Fatalf("last step duty = %v, want 100", got[len(got)-1].Duty)
	}
}

func TestNormalizeMonotonicNonDecreasing(t *testing.T) {
	got, err := Normalize([]Point{{10, 50}, {20, 10}, {30, 90}}, 60, 100)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Duty < got[i-1].Duty {
			t.Fatalf("duty decreased at step %d: %v", i, got)
		}
		if got[i].Temp <= got[i-1].Temp {
			t.Fatalf("temp not strictly increasing at step %d: %v", i, got)
		}
	}
}
