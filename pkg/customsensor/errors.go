// SPDX-License-Identifier: BSD-3-Clause

package customsensor

import "errors"

var (
	// ErrMixRequiresSources indicates a Mix sensor has no configured sources.
	ErrMixRequiresSources = errors.New("mix custom sensor requires sources")
	// ErrMixCannotHaveFilePath indicates a Mix sensor was given a file path.
	ErrMixCannotHaveFilePath = errors.New("mix custom sensor cannot carry a file path")
	// ErrFileRequiresPath indicates a File sensor has no path configured.
	ErrFileRequiresPath = errors.New("file custom sensor requires a path")
	// ErrFileCannotHaveSources indicates a File sensor was given sources.
	ErrFileCannotHaveSources = errors.New("file custom sensor cannot carry sources")
	// ErrInvalidMixFunction indicates an unrecognized mix reduction was requested.
	ErrInvalidMixFunction = errors.New("invalid custom sensor mix function")
	// ErrWeightOutOfRange indicates a WeightedAvg source's weight fell
	// outside [0,254] (spec §4.4).
	ErrWeightOutOfRange = errors.New("weighted average source weight out of range [0,254]")
	// ErrMalformedFileReading indicates a File sensor's backing file did not
	// contain exactly one line-terminated decimal number.
	ErrMalformedFileReading = errors.New("custom sensor file did not contain a single decimal reading")
)
