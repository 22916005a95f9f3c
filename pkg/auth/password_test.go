// SPDX-License-Identifier: BSD-3-Clause

package auth

import "testing"

func TestHashAndVerifyPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	ok, migrated, err := VerifyPassword("hunter2", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatalf("expected verify(p, hash(p)) to be true")
	}
	if migrated {
		t.Fatalf("expected no migration for a fresh argon2id hash")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	ok, _, err := VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatalf("expected verify(p', hash(p)) to be false for p' != p")
	}
}

func TestLegacyHashMigrates(t *testing.T) {
	legacy := HashLegacySHA512("coolAdmin")
	ok, migrated, err := VerifyPassword("coolAdmin", legacy)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatalf("expected legacy hash to verify")
	}
	if !migrated {
		t.Fatalf("expected a successful legacy compare to request migration")
	}
}

func TestLegacyHashRejectsWrongPassword(t *testing.T) {
	legacy := HashLegacySHA512("coolAdmin")
	ok, migrated, err := VerifyPassword("wrong", legacy)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok || migrated {
		t.Fatalf("expected legacy mismatch to neither verify nor migrate")
	}
}

func TestIsLegacyHash(t *testing.T) {
	hash, _ := HashPassword("x")
	if IsLegacyHash(hash) {
		t.Fatalf("fresh argon2id hash misidentified as legacy")
	}
	if !IsLegacyHash(HashLegacySHA512("x")) {
		t.Fatalf("sha512 digest misidentified as argon2id")
	}
}
