// SPDX-License-Identifier: BSD-3-Clause

package logbuf

import "testing"

func TestRingEvictsOldest(t *testing.T) {
	r, err := NewRing(3)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	for i := range 5 {
		r.Push(Entry{UnixNano: int64(i), Message: "m"})
	}
	got := r.Slice(0)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []int64{2, 3, 4}
	for i, e := range got {
		if e.UnixNano != want[i] {
			t.Errorf("entry %d = %d, want %d", i, e.UnixNano, want[i])
		}
	}
}

func TestRingCounters(t *testing.T) {
	r, _ := NewRing(10)
	r.Push(Entry{Level: "WARN"})
	r.Push(Entry{Level: "ERROR"})
	r.Push(Entry{Level: "INFO"})
	warnings, errors := r.Counts()
	if warnings != 1 || errors != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", warnings, errors)
	}
}

func TestNewRingRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := NewRing(0); err != ErrCapacityInvalid {
		t.Errorf("err = %v, want ErrCapacityInvalid", err)
	}
}
