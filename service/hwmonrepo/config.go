// SPDX-License-Identifier: BSD-3-Clause

package hwmonrepo

import (
	"github.com/coolercontrol/coolercontrold/pkg/hwmon"
)

// claimedNamePrefixes lists hwmon device names claimed by other repositories
// (liquidctl, GPU) so this repo does not double-report them (spec §4.2).
var claimedNamePrefixes = []string{"nzxt", "kraken", "smartdevice", "amdgpu"}

// laptopClassNames force pwm*_enable back to automatic (2) on shutdown
// regardless of the value observed at init (spec §4.2).
var laptopClassNames = map[string]bool{
	"thinkpad":     true,
	"asus-nb-wmi":  true,
	"asus_fan":     true,
}

type config struct {
	basePath     string
	powercapPath string
}

// Option configures a Repository.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithBasePath overrides the default /sys/class/hwmon root, used in tests.
func WithBasePath(path string) Option {
	return optionFunc(func(c *config) { c.basePath = path })
}

// WithPowercapPath overrides the default /sys/class/powercap root.
func WithPowercapPath(path string) Option {
	return optionFunc(func(c *config) { c.powercapPath = path })
}

func defaultConfig() *config {
	return &config{
		basePath:     hwmon.DefaultHwmonPath,
		powercapPath: "/sys/class/powercap",
	}
}
