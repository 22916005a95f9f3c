// SPDX-License-Identifier: BSD-3-Clause

package gpurepo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/coolercontrol/coolercontrold/pkg/device"
)

type nvidiaGPU struct {
	dev   *device.Device
	index string
}

// nvidiaReading is one parsed row of nvidia-smi's csv output.
type nvidiaReading struct {
	index       string
	name        string
	tempC       float64
	utilPercent float64
	powerW      float64
	clockMHz    float64
	fanPercent  float64
}

// discoverNVIDIA probes for nvidia-smi and, if present, builds one device
// per reported GPU. Absence of the binary (no NVIDIA card, or a headless
// build without the proprietary driver) is not an error.
func discoverNVIDIA(ctx context.Context, startIndex int) []*nvidiaGPU {
	readings, err := queryNVIDIASMI(ctx)
	if err != nil {
		return nil
	}

	var found []*nvidiaGPU
	for i, r := range readings {
		info := device.DeviceInfo{Channels: map[string]device.ChannelInfo{
			"fan": {
				Name:  "fan",
				Speed: &device.SpeedOptions{MinDuty: 0, MaxDuty: 100, FixedEnabled: false, ManualProfilesEnabled: false},
			},
		}}
		dev, err := device.New(fmt.Sprintf("%s #%s", r.name, r.index), device.KindGPU, startIndex+i, "nvidia:"+r.index, info, 1860)
		if err != nil {
			continue
		}
		found = append(found, &nvidiaGPU{dev: dev, index: r.index})
	}
	return found
}

// queryNVIDIASMI runs nvidia-smi once and parses its CSV rows.
func queryNVIDIASMI(ctx context.Context) ([]nvidiaReading, error) {
	cmd := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=index,name,temperature.gpu,utilization.gpu,power.draw,clocks.sm,fan.speed",
		"--format=csv,noheader,nounits")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNvidiaSMIUnavailable, err)
	}

	var readings []nvidiaReading
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 7 {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		readings = append(readings, nvidiaReading{
			index:       fields[0],
			name:        fields[1],
			tempC:       parseFloatOrZero(fields[2]),
			utilPercent: parseFloatOrZero(fields[3]),
			powerW:      parseFloatOrZero(fields[4]),
			clockMHz:    parseFloatOrZero(fields[5]),
			fanPercent:  parseFloatOrZero(fields[6]),
		})
	}
	return readings, nil
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
