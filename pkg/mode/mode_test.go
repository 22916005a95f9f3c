// SPDX-License-Identifier: BSD-3-Clause

package mode

import (
	"context"
	"errors"
	"testing"

	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

func TestCaptureAndEntries(t *testing.T) {
	m, err := New("m1", "silent")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	duty := 40.0
	m.Capture("d1", "pump", repository.Setting{FixedDuty: &duty})

	entries := m.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].DeviceUID != "d1" || entries[0].ChannelName != "pump" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestIsEmpty(t *testing.T) {
	m, _ := New("m1", "silent")
	if !m.IsEmpty() {
		t.Fatalf("new mode should be empty")
	}
	duty := 40.0
	m.Capture("d1", "pump", repository.Setting{FixedDuty: &duty})
	if m.IsEmpty() {
		t.Fatalf("mode with a capture should not be empty")
	}
}

func TestRemoveProfileReferencesRetainsEmptyMode(t *testing.T) {
	m, _ := New("m1", "silent")
	profileUID := "p1"
	m.Capture("d1", "pump", repository.Setting{ProfileUID: &profileUID})

	m.RemoveProfileReferences(profileUID)
	if !m.IsEmpty() {
		t.Fatalf("expected mode to be emptied of profile references")
	}
}

func TestActivatorAppliesAllEntriesAndReportsFailures(t *testing.T) {
	m, _ := New("m1", "silent")
	duty := 40.0
	m.Capture("d1", "pump", repository.Setting{FixedDuty: &duty})
	m.Capture("d1", "fan", repository.Setting{FixedDuty: &duty})

	a, err := NewActivator(context.Background(), m)
	if err != nil {
		t.Fatalf("NewActivator: %v", err)
	}

	applied := 0
	results, err := a.Activate(context.Background(), func(ctx context.Context, deviceUID, channelName string, e Entry) error {
		applied++
		if channelName == "fan" {
			return errors.New("device gone")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if applied != 2 {
		t.Fatalf("applied %d entries, want 2 (partial failure still proceeds)", applied)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestActivatorCanReactivate(t *testing.T) {
	m, _ := New("m1", "silent")
	duty := 40.0
	m.Capture("d1", "pump", repository.Setting{FixedDuty: &duty})

	a, err := NewActivator(context.Background(), m)
	if err != nil {
		t.Fatalf("NewActivator: %v", err)
	}

	noop := func(ctx context.Context, deviceUID, channelName string, e Entry) error { return nil }

	if _, err := a.Activate(context.Background(), noop); err != nil {
		t.Fatalf("first Activate: %v", err)
	}
	if _, err := a.Activate(context.Background(), noop); err != nil {
		t.Fatalf("second Activate (reactivation): %v", err)
	}
}
