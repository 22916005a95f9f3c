// SPDX-License-Identifier: BSD-3-Clause

package configstore

import (
	"path/filepath"
	"testing"

	"github.com/coolercontrol/coolercontrold/pkg/profile"
)

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.toml"))
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Profiles) != 0 {
		t.Fatalf("expected an empty document for a missing file")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "config.toml"))

	duty := 55.0
	doc := Document{
		Profiles: []profile.Profile{
			{UID: "p1", Kind: profile.KindFixed, Name: "silent", FixedDuty: &duty},
		},
	}

	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Profiles) != 1 {
		t.Fatalf("got %d profiles, want 1", len(got.Profiles))
	}
	if got.Profiles[0].UID != "p1" || got.Profiles[0].FixedDuty == nil || *got.Profiles[0].FixedDuty != 55.0 {
		t.Fatalf("round trip mismatch: %+v", got.Profiles[0])
	}
}
