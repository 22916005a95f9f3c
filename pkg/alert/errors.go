// SPDX-License-Identifier: BSD-3-Clause

package alert

import "errors"

var (
	// ErrInvalidBand indicates max <= min.
	ErrInvalidBand = errors.New("alert band requires max > min")
	// ErrNegativeBound indicates min or max was negative.
	ErrNegativeBound = errors.New("alert band bounds must be non-negative")
	// ErrNegativeWarmup indicates warmup_duration_s was negative.
	ErrNegativeWarmup = errors.New("alert warmup duration must be non-negative")
	// ErrEmptyName indicates an Alert was built without a name.
	ErrEmptyName = errors.New("alert name cannot be empty")
)
