// SPDX-License-Identifier: BSD-3-Clause

package gpurepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/hwmon"
)

// amdFan mirrors the hwmon fan-channel bookkeeping needed to restore the
// card's default fan mode on shutdown.
type amdFan struct {
	pwmPath       string
	enablePath    string
	fanInputPath  string
	restoreEnable int
}

type amdGPU struct {
	dev  *device.Device
	path string
	fan  *amdFan
	temp string // temp1_input path
}

// discoverAMD locates every amdgpu hwmon node and builds its device model.
// amdgpu cards typically run their fan curve in firmware; a pwm1 node is
// only present (and writable) on cards whose vendor driver exposes manual
// control.
func discoverAMD(ctx context.Context, hwmonBase string, startIndex int) []*amdGPU {
	entries, err := os.ReadDir(hwmonBase)
	if err != nil {
		return nil
	}

	var found []*amdGPU
	idx := startIndex
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "hwmon") {
			continue
		}
		devPath := filepath.Join(hwmonBase, e.Name())
		name, err := hwmon.ReadStringCtx(ctx, filepath.Join(devPath, "name"))
		if err != nil || !strings.EqualFold(name, "amdgpu") {
			continue
		}

		g := &amdGPU{path: devPath}

		tempPath := filepath.Join(devPath, "temp1_input")
		if _, err := hwmon.ReadIntCtx(ctx, tempPath); err == nil {
			g.temp = tempPath
		}

		pwmPath := filepath.Join(devPath, "pwm1")
		enablePath := filepath.Join(devPath, "pwm1_enable")
		fanInputPath := filepath.Join(devPath, "fan1_input")
		if _, err := hwmon.ReadIntCtx(ctx, pwmPath); err == nil {
			restore := 2
			if v, err := hwmon.ReadIntCtx(ctx, enablePath); err == nil {
				restore = v
			}
			g.fan = &amdFan{pwmPath: pwmPath, enablePath: enablePath, fanInputPath: fanInputPath, restoreEnable: restore}
		}

		if g.temp == "" && g.fan == nil {
			continue
		}

		info := device.DeviceInfo{Channels: map[string]device.ChannelInfo{}}
		if g.fan != nil {
			info.Channels["fan"] = device.ChannelInfo{
				Name:  "fan",
				Speed: &device.SpeedOptions{MinDuty: 0, MaxDuty: 100, FixedEnabled: true, ManualProfilesEnabled: true},
			}
		}

		hardwareID := resolveSerial(devPath)
		dev, err := device.New(fmt.Sprintf("AMD GPU #%d", idx), device.KindGPU, idx, hardwareID, info, 1860)
		if err != nil {
			continue
		}
		g.dev = dev
		found = append(found, g)
		idx++
	}
	return found
}

func resolveSerial(devPath string) string {
	if resolved, err := filepath.EvalSymlinks(devPath); err == nil {
		return resolved
	}
	return ""
}
