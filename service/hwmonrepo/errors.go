// SPDX-License-Identifier: BSD-3-Clause

package hwmonrepo

import "errors"

var (
	// ErrChannelUnreadable indicates a pwm/fan pair could not be read as an
	// integer at discovery time, so the channel is rejected entirely.
	ErrChannelUnreadable = errors.New("hwmon channel unreadable at discovery")
	// ErrNoDutyChannel indicates an apply targeted a channel with no pwm output.
	ErrNoDutyChannel = errors.New("channel has no duty output")
)
