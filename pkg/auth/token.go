// SPDX-License-Identifier: BSD-3-Clause

package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenPrefix marks the bearer tokens this daemon issues.
const TokenPrefix = "cc_"

// Token is one stored, hashed bearer credential (spec §6 .tokens).
type Token struct {
	ID        string
	Label     string
	Hash      string
	CreatedAt time.Time
	ExpiresAt *time.Time
	LastUsed  *time.Time
}

// GenerateToken returns a fresh raw bearer token. The caller must hash it
// with HashToken before persisting; the raw value is shown to the user
// exactly once.
func GenerateToken() string {
	return TokenPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// HashToken hashes a raw token with Argon2id for storage.
func HashToken(raw string) (string, error) {
	return hashArgon2id(raw, DefaultArgon2idParams)
}

// VerifyToken reports whether raw matches a stored Argon2id token hash.
func VerifyToken(raw, hash string) bool {
	ok, err := verifyArgon2id(raw, hash)
	return err == nil && ok
}

// Expired reports whether t has passed its expiry at the given time.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}

// FindMatch returns the ID of the first non-expired token in tokens whose
// hash verifies against raw, or "", false if none match.
func FindMatch(raw string, tokens []Token, now time.Time) (string, bool) {
	for _, t := range tokens {
		if t.Expired(now) {
			continue
		}
		if VerifyToken(raw, t.Hash) {
			return t.ID, true
		}
	}
	return "", false
}
