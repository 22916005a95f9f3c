// SPDX-License-Identifier: BSD-3-Clause

package profile

import "errors"

var (
	// ErrGraphRequiresSpeedProfile indicates a Graph profile was built without a speed_profile.
	ErrGraphRequiresSpeedProfile = errors.New("graph profile requires a speed profile")
	// ErrGraphRequiresTempSource indicates a Graph profile was built without a temp_source.
	ErrGraphRequiresTempSource = errors.New("graph profile requires a temp source")
	// ErrMixRequiresMembers indicates a Mix profile was built without member profiles.
	ErrMixRequiresMembers = errors.New("mix profile requires member profiles")
	// ErrMixRequiresFunction indicates a Mix profile was built without a mix function.
	ErrMixRequiresFunction = errors.New("mix profile requires a mix function")
	// ErrFixedRequiresDuty indicates a Fixed profile was built without a fixed_duty.
	ErrFixedRequiresDuty = errors.New("fixed profile requires a fixed duty")
	// ErrEmptySpeedProfile indicates normalization was attempted on an empty point list.
	ErrEmptySpeedProfile = errors.New("speed profile has no points")
	// ErrInvalidMixFunction indicates an unrecognized mix reduction was requested.
	ErrInvalidMixFunction = errors.New("invalid mix function")
)
