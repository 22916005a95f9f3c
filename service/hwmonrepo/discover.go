// SPDX-License-Identifier: BSD-3-Clause

package hwmonrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/hwmon"
)

// discoverDevice builds one hwmonDevice from a hwmon<N> sysfs directory. It
// returns (nil, nil) when the device has nothing usable (no fans, temps,
// power or frequency channels) rather than an error, since that's common for
// stray hwmon entries (spec §4.2).
func (r *Repository) discoverDevice(ctx context.Context, devPath, name string) (*hwmonDevice, error) {
	entries, err := os.ReadDir(devPath)
	if err != nil {
		return nil, err
	}

	hd := &hwmonDevice{
		path:  devPath,
		fans:  map[string]*fanChannel{},
		temps: map[string]*tempChannel{},
		freqs: map[string]string{},
	}

	isLaptop := laptopClassNames[strings.ToLower(name)]
	isDriveTemp := strings.EqualFold(name, "drivetemp")

	var pwmIndices []int
	filenames := map[string]bool{}
	for _, e := range entries {
		filenames[e.Name()] = true
	}
	for fn := range filenames {
		if idx, ok := parseIndex(pwmRe, fn); ok {
			pwmIndices = append(pwmIndices, idx)
		}
	}
	sort.Ints(pwmIndices)

	channelCounts := map[string]int{}
	for _, idx := range pwmIndices {
		fc, label, err := r.buildFanChannel(ctx, devPath, idx, isLaptop)
		if err != nil {
			continue
		}
		channelCounts[label]++
		if n := channelCounts[label]; n > 1 {
			label = fmt.Sprintf("%s #%d", label, n)
		}
		hd.fans[label] = fc
	}

	var drive *driveTemp
	if isDriveTemp {
		drive = newDriveTemp(devPath)
	}

	var tempIndices []int
	for fn := range filenames {
		if idx, ok := parseIndex(tempRe, fn); ok {
			tempIndices = append(tempIndices, idx)
		}
	}
	sort.Ints(tempIndices)
	tempCounts := map[string]int{}
	for _, idx := range tempIndices {
		inputPath := filepath.Join(devPath, fmt.Sprintf("temp%d_input", idx))
		milli, err := hwmon.ReadIntCtx(ctx, inputPath)
		if err != nil {
			continue
		}
		celsius := float64(milli) / 1000.0
		if celsius < 0 || celsius > 100 {
			continue
		}
		label := tempLabel(devPath, idx)
		tempCounts[label]++
		if n := tempCounts[label]; n > 1 {
			label = fmt.Sprintf("%s #%d", label, n)
		}
		hd.temps[label] = &tempChannel{index: idx, inputPath: inputPath, drive: drive}
	}

	if filenames["power1_average"] {
		hd.powerPath = filepath.Join(devPath, "power1_average")
		hd.powerAvg = true
	} else if filenames["power1_input"] {
		hd.powerPath = filepath.Join(devPath, "power1_input")
	}

	for fn := range filenames {
		if idx, ok := parseIndex(freqRe, fn); ok {
			hd.freqs[fmt.Sprintf("freq%d", idx)] = filepath.Join(devPath, fn)
		}
	}

	if len(hd.fans) == 0 && len(hd.temps) == 0 && hd.powerPath == "" && len(hd.freqs) == 0 {
		return nil, nil
	}

	rapl := r.discoverRapl(devPath, name)
	hd.rapl = rapl

	info := device.DeviceInfo{Channels: map[string]device.ChannelInfo{}}
	for label := range hd.fans {
		info.Channels[label] = device.ChannelInfo{
			Name: label,
			Speed: &device.SpeedOptions{
				MinDuty:               0,
				MaxDuty:               100,
				FixedEnabled:          true,
				ManualProfilesEnabled: true,
			},
		}
	}

	hardwareID := deviceSerial(devPath)
	typeIndex := len(r.devices)
	dev, err := device.New(name, device.KindHwmon, typeIndex, hardwareID, info, RingCapacity)
	if err != nil {
		return nil, err
	}
	hd.dev = dev
	return hd, nil
}

// buildFanChannel validates a pwm<N>/fan<N> pair and probes DC/PWM mode
// support by the write-0-then-1-then-restore sequence described in spec §4.2.
func (r *Repository) buildFanChannel(ctx context.Context, devPath string, idx int, isLaptop bool) (*fanChannel, string, error) {
	pwmPath := filepath.Join(devPath, fmt.Sprintf("pwm%d", idx))
	fanInputPath := filepath.Join(devPath, fmt.Sprintf("fan%d_input", idx))
	enablePath := filepath.Join(devPath, fmt.Sprintf("pwm%d_enable", idx))
	modePath := filepath.Join(devPath, fmt.Sprintf("pwm%d_mode", idx))

	if _, err := hwmon.ReadIntCtx(ctx, pwmPath); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrChannelUnreadable, err)
	}
	if _, err := hwmon.ReadIntCtx(ctx, fanInputPath); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrChannelUnreadable, err)
	}

	restoreEnable := 1
	if v, err := hwmon.ReadIntCtx(ctx, enablePath); err == nil {
		restoreEnable = v
	}

	fc := &fanChannel{
		index:          idx,
		pwmPath:        pwmPath,
		enablePath:     enablePath,
		fanInputPath:   fanInputPath,
		modePath:       modePath,
		restoreEnable:  restoreEnable,
		isLaptopRevert: isLaptop,
	}

	if original, err := hwmon.ReadIntCtx(ctx, modePath); err == nil {
		fc.restoreMode = original
		if hwmon.WriteIntCtx(ctx, modePath, 0) == nil {
			if hwmon.WriteIntCtx(ctx, modePath, 1) == nil {
				fc.hasMode = true
			}
			_ = hwmon.WriteIntCtx(ctx, modePath, original)
		}
	}

	return fc, fmt.Sprintf("fan%d", idx), nil
}

// tempLabel reads the optional temp<N>_label file, falling back to a
// positional name.
func tempLabel(devPath string, idx int) string {
	labelPath := filepath.Join(devPath, fmt.Sprintf("temp%d_label", idx))
	if label, err := hwmon.ReadStringCtx(context.Background(), labelPath); err == nil && label != "" {
		return label
	}
	return fmt.Sprintf("temp%d", idx)
}

// deviceSerial resolves a stable hardware identifier for a hwmon device:
// its /device/serial file, falling back to uevent's HID_UNIQ, falling back
// to the canonicalized sysfs path (spec §4.2).
func deviceSerial(devPath string) string {
	if data, err := os.ReadFile(filepath.Join(devPath, "device", "serial")); err == nil {
		if s := strings.TrimSpace(string(data)); s != "" {
			return s
		}
	}
	if data, err := os.ReadFile(filepath.Join(devPath, "device", "uevent")); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "HID_UNIQ=") {
				if v := strings.TrimPrefix(line, "HID_UNIQ="); v != "" {
					return v
				}
			}
		}
	}
	if resolved, err := filepath.EvalSymlinks(devPath); err == nil {
		return resolved
	}
	return ""
}
