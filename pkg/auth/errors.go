// SPDX-License-Identifier: BSD-3-Clause

package auth

import "errors"

var (
	// ErrInvalidCredentials indicates a password or token failed verification.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLockedOut indicates the caller is within an active lockout window.
	ErrLockedOut = errors.New("account locked out after too many failed attempts")
	// ErrMalformedHash indicates a stored hash could not be parsed.
	ErrMalformedHash = errors.New("malformed password hash")
)
