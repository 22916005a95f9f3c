// SPDX-License-Identifier: BSD-3-Clause

package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2idParams tunes the Argon2id KDF. The defaults match the OWASP
// baseline recommendation for interactive logins.
type Argon2idParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2idParams are used by HashPassword and HashToken.
var DefaultArgon2idParams = Argon2idParams{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

const argon2idPrefix = "$argon2id$"

// HashPassword hashes passwd with Argon2id, encoding the result as a PHC
// string: $argon2id$v=19$m=...,t=...,p=...$salt$hash.
func HashPassword(passwd string) (string, error) {
	return hashArgon2id(passwd, DefaultArgon2idParams)
}

func hashArgon2id(secret string, p Argon2idParams) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(secret), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads, b64Salt, b64Hash), nil
}

// IsLegacyHash reports whether stored is a pre-Argon2id SHA-512 hex digest
// rather than a PHC-encoded Argon2id hash.
func IsLegacyHash(stored string) bool {
	return !strings.HasPrefix(stored, argon2idPrefix)
}

// HashLegacySHA512 reproduces the legacy hex-encoded SHA-512 digest, used
// only to verify passwords stored before the Argon2id migration.
func HashLegacySHA512(passwd string) string {
	sum := sha512.Sum512([]byte(passwd))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether passwd matches stored, transparently
// handling both Argon2id PHC hashes and legacy SHA-512 hex digests.
// migrated is true when a legacy hash was matched and should be replaced
// by the caller with a fresh Argon2id hash of passwd (spec "legacy
// SHA-512 migrated on first successful compare").
func VerifyPassword(passwd, stored string) (ok bool, migrated bool, err error) {
	if IsLegacyHash(stored) {
		candidate := HashLegacySHA512(passwd)
		match := subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1
		return match, match, nil
	}

	ok, err = verifyArgon2id(passwd, stored)
	return ok, false, err
}

func verifyArgon2id(secret, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}

	var p Argon2idParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}

	got := argon2.IDKey([]byte(secret), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
