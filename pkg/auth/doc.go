// SPDX-License-Identifier: BSD-3-Clause

// Package auth implements the password and token hashing rules referenced
// by spec §6/§7: Argon2id hashing with transparent migration from a
// legacy SHA-512 hex digest, bearer token generation/hashing, and the
// rate-limiting lockout policy for InvalidCredentials (5 attempts,
// exponential backoff capped at 15 minutes).
//
// The HTTP/gRPC surface that calls into this package is out of scope
// (spec §1); this package only implements the hashing and lockout
// primitives those surfaces would call.
package auth
