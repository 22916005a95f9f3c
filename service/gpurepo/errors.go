// SPDX-License-Identifier: BSD-3-Clause

package gpurepo

import "errors"

// ErrNvidiaSMIUnavailable indicates nvidia-smi could not be invoked; NVIDIA
// discovery is skipped rather than failing repository init.
var ErrNvidiaSMIUnavailable = errors.New("nvidia-smi unavailable")
