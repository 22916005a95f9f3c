// SPDX-License-Identifier: BSD-3-Clause

package auth

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateTokenFormat(t *testing.T) {
	tok := GenerateToken()
	if !strings.HasPrefix(tok, TokenPrefix) {
		t.Fatalf("token %q missing prefix %q", tok, TokenPrefix)
	}
}

func TestHashAndVerifyTokenRoundTrip(t *testing.T) {
	raw := GenerateToken()
	hash, err := HashToken(raw)
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	if !VerifyToken(raw, hash) {
		t.Fatalf("expected verify_token(raw, hash_token(raw)) to be true")
	}
}

func TestVerifyTokenRejectsWrongToken(t *testing.T) {
	raw := GenerateToken()
	hash, _ := HashToken(raw)
	if VerifyToken(GenerateToken(), hash) {
		t.Fatalf("expected a different token to fail verification")
	}
}

func TestExpiredTokenNeverValidates(t *testing.T) {
	raw := GenerateToken()
	hash, _ := HashToken(raw)
	past := time.Now().Add(-time.Hour)
	tok := Token{ID: "t1", Hash: hash, ExpiresAt: &past}

	_, ok := FindMatch(raw, []Token{tok}, time.Now())
	if ok {
		t.Fatalf("expected an expired token to never validate")
	}
}

func TestFindMatchAcceptsNonExpired(t *testing.T) {
	raw := GenerateToken()
	hash, _ := HashToken(raw)
	future := time.Now().Add(time.Hour)
	tok := Token{ID: "t1", Hash: hash, ExpiresAt: &future}

	id, ok := FindMatch(raw, []Token{tok}, time.Now())
	if !ok || id != "t1" {
		t.Fatalf("got (%q, %v), want (\"t1\", true)", id, ok)
	}
}
