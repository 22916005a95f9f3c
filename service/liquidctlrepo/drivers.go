// SPDX-License-Identifier: BSD-3-Clause

package liquidctlrepo

import "github.com/coolercontrol/coolercontrold/pkg/device"

// driverProfile declares one supported liquidctl device_type's channel
// catalog, lighting modes and LCD modes (spec §4.3). A device_type absent
// from this table is skipped, without a log entry, rather than crashing
// the daemon.
type driverProfile struct {
	channels     []string
	lightingModes []device.LightingMode
	lcdModes      []device.LcdMode
}

var supportedDrivers = map[string]driverProfile{
	"Kraken X3": {
		channels: []string{"pump", "fan"},
		lightingModes: []device.LightingMode{
			{Name: "liquid", MinColors: 1, MaxColors: 1},
			{Name: "spectrum-wave", MinColors: 0, MaxColors: 0, Speeds: []string{"slowest", "slower", "normal", "faster", "fastest"}},
		},
		lcdModes: []device.LcdMode{
			{Name: "liquid_temp", WidthPx: 320, HeightPx: 320, MaxImageSizeKB: 24},
		},
	},
	"Kraken Z3": {
		channels: []string{"pump", "fan"},
		lightingModes: []device.LightingMode{
			{Name: "liquid", MinColors: 1, MaxColors: 1},
		},
		lcdModes: []device.LcdMode{
			{Name: "liquid_temp", WidthPx: 320, HeightPx: 320, MaxImageSizeKB: 24},
			{Name: "image", WidthPx: 320, HeightPx: 320, MaxImageSizeKB: 24},
		},
	},
	"Smart Device V2": {
		channels: []string{"fan1", "fan2", "fan3"},
		lightingModes: []device.LightingMode{
			{Name: "fixed", MinColors: 1, MaxColors: 1},
			{Name: "color-shift", MinColors: 2, MaxColors: 2, Speeds: []string{"slowest", "slower", "normal", "faster", "fastest"}, Backward: true},
		},
	},
	"Commander Pro": {
		channels: []string{"fan1", "fan2", "fan3", "fan4", "fan5", "fan6"},
	},
	"Commander Core": {
		channels: []string{"pump", "fan1", "fan2", "fan3", "fan4", "fan5", "fan6"},
	},
	"Aquacomputer D5Next": {
		channels: []string{"pump", "fan"},
	},
}

// driverFor resolves a bridge device_type to its supported profile.
func driverFor(deviceType string) (driverProfile, bool) {
	p, ok := supportedDrivers[deviceType]
	return p, ok
}
