// SPDX-License-Identifier: BSD-3-Clause

package device

import "testing"

func TestRingFIFOEviction(t *testing.T) {
	r, err := NewRing(3)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	for i := int64(1); i <= 5; i++ {
		r.Push(Status{TimestampUnix: i})
	}

	if got := r.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	got := r.Slice(0)
	want := []int64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Slice() len = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.TimestampUnix != want[i] {
			t.Errorf("Slice()[%d].TimestampUnix = %d, want %d", i, s.TimestampUnix, want[i])
		}
	}
}

func TestRingCapacityCapped(t *testing.T) {
	r, err := NewRing(DefaultRingCapacity)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	for i := 0; i < DefaultRingCapacity+40; i++ {
		r.Push(Status{TimestampUnix: int64(i)})
	}
	if got := r.Len(); got > 1900 {
		t.Fatalf("Len() = %d, want <= 1900", got)
	}
}

func TestRingSince(t *testing.T) {
	r, _ := NewRing(10)
	for i := int64(0); i < 10; i++ {
		r.Push(Status{TimestampUnix: i * 2})
	}

	got := r.Since(11)
	if len(got) != 4 {
		t.Fatalf("Since(11) len = %d, want 4", len(got))
	}
	if got[0].TimestampUnix != 12 {
		t.Fatalf("Since(11)[0].TimestampUnix = %d, want 12", got[0].TimestampUnix)
	}
}

func TestRingTimestampMonotonic(t *testing.T) {
	r, _ := NewRing(5)
	for i := int64(0); i < 20; i++ {
		r.Push(Status{TimestampUnix: i})
	}
	entries := r.Slice(0)
	for i := 1; i < len(entries); i++ {
		if entries[i].TimestampUnix <= entries[i-1].TimestampUnix {
			t.Fatalf("entries not timestamp-monotonic at %d: %d <= %d", i, entries[i].TimestampUnix, entries[i-1].TimestampUnix)
		}
	}
}

func TestRingReset(t *testing.T) {
	r, _ := NewRing(5)
	r.Push(Status{TimestampUnix: 1})
	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", r.Len())
	}
	if _, ok := r.Latest(); ok {
		t.Fatal("Latest() after Reset should report no entry")
	}
}

func TestNewRingRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := NewRing(0); err == nil {
		t.Fatal("NewRing(0) should return an error")
	}
	if _, err := NewRing(-1); err == nil {
		t.Fatal("NewRing(-1) should return an error")
	}
}
