// SPDX-License-Identifier: BSD-3-Clause

package hwmonrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/hwmon"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// RingCapacity is the status ring depth for hwmon devices: roughly the last
// 31 minutes of history at 1 Hz (spec §3).
const RingCapacity = 1860

var pwmRe = regexp.MustCompile(`^pwm(\d+)$`)
var tempRe = regexp.MustCompile(`^temp(\d+)_input$`)
var freqRe = regexp.MustCompile(`^freq(\d+)_input$`)

// fanChannel tracks one pwm<N>/fan<N> pair discovered at init.
type fanChannel struct {
	index          int
	pwmPath        string
	enablePath     string
	fanInputPath   string
	modePath       string
	restoreEnable  int
	restoreMode    int
	hasMode        bool
	isLaptopRevert bool
}

// tempChannel tracks one temp<N>_input discovered at init.
type tempChannel struct {
	index     int
	inputPath string
	drive     *driveTemp // non-nil when this channel belongs to a drivetemp device
}

// hwmonDevice is the repo's private bookkeeping for one discovered hwmon
// device, wrapping the pkg/device.Device the engine sees.
type hwmonDevice struct {
	dev       *device.Device
	rawName   string
	path      string
	fans      map[string]*fanChannel
	temps     map[string]*tempChannel
	powerPath string
	powerAvg  bool
	freqs     map[string]string // channel name -> freq<N>_input path
	rapl      *raplCounter
}

// Repository discovers and drives every generic hwmon fan and temperature
// sensor on the system, plus RAPL power-cap and drivetemp collaborators
// riding the same sysfs tree (spec §4.2).
type Repository struct {
	cfg *config

	mu      sync.Mutex
	devices []*hwmonDevice

	lastPoll time.Time
}

// New constructs a Repository. Discovery happens in InitializeDevices.
func New(opts ...Option) *Repository {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Repository{cfg: cfg}
}

// Kind implements repository.Repository.
func (r *Repository) Kind() device.Kind { return device.KindHwmon }

// InitializeDevices implements repository.Repository. Idempotent: re-running
// it rediscovers from scratch, which is safe to call again after resume.
func (r *Repository) InitializeDevices(ctx context.Context) error {
	entries, err := os.ReadDir(r.cfg.basePath)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInit, err)
	}

	seenNames := map[string]int{}
	var discovered []*hwmonDevice

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "hwmon") {
			continue
		}
		devPath := filepath.Join(r.cfg.basePath, entry.Name())

		name := readNameOrFallback(devPath, entry.Name())
		if isClaimedName(name) {
			continue
		}

		hd, err := r.discoverDevice(ctx, devPath, name)
		if err != nil || hd == nil {
			continue
		}

		seenNames[name]++
		if n := seenNames[name]; n > 1 {
			hd.rawName = fmt.Sprintf("%s #%d", name, n)
		} else {
			hd.rawName = name
		}

		discovered = append(discovered, hd)
	}

	sort.Slice(discovered, func(i, j int) bool { return discovered[i].path < discovered[j].path })

	r.mu.Lock()
	r.devices = discovered
	r.mu.Unlock()
	return nil
}

// Devices implements repository.Repository.
func (r *Repository) Devices() []*device.Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*device.Device, 0, len(r.devices))
	for _, hd := range r.devices {
		out = append(out, hd.dev)
	}
	return out
}

// PreloadStatuses implements repository.Repository; hwmon reads are cheap
// sysfs I/O so preload and commit happen in the same pass here.
func (r *Repository) PreloadStatuses(ctx context.Context) error {
	return nil
}

// UpdateStatuses implements repository.Repository.
func (r *Repository) UpdateStatuses(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(r.lastPoll)
	if r.lastPoll.IsZero() {
		elapsed = time.Second
	}
	r.lastPoll = now

	for _, hd := range r.devices {
		status := device.Status{TimestampUnix: now.Unix()}

		for name, fc := range hd.fans {
			rpm, err := hwmon.ReadIntCtx(ctx, fc.fanInputPath)
			var rpmPtr *float64
			if err == nil {
				v := float64(rpm)
				rpmPtr = &v
			}
			duty255, dutyErr := hwmon.ReadIntCtx(ctx, fc.pwmPath)
			var dutyPtr *float64
			if dutyErr == nil {
				v := device.Round2(float64(duty255) / 255.0 * 100.0)
				dutyPtr = &v
			}
			status.Channels = append(status.Channels, device.ChannelStatus{
				ChannelName: name,
				RPM:         rpmPtr,
				DutyPercent: dutyPtr,
			})
		}

		for name, tc := range hd.temps {
			status.Temps = append(status.Temps, device.TempStatus{
				ChannelName: name,
				Celsius:     r.readTemp(ctx, tc),
			})
		}

		if hd.powerPath != "" {
			microwatts, err := hwmon.ReadIntCtx(ctx, hd.powerPath)
			if err == nil {
				watts := device.Round2(float64(microwatts) / 1_000_000.0)
				status.Channels = append(status.Channels, device.ChannelStatus{
					ChannelName: "power",
					Watts:       &watts,
				})
			}
		}

		for name, path := range hd.freqs {
			hz, err := hwmon.ReadIntCtx(ctx, path)
			if err == nil {
				mhz := float64(hz / 1_000_000)
				status.Channels = append(status.Channels, device.ChannelStatus{
					ChannelName: name,
					MHz:         &mhz,
				})
			}
		}

		if hd.rapl != nil {
			watts, err := hd.rapl.sample(ctx, elapsed.Seconds())
			if err == nil {
				status.Channels = append(status.Channels, device.ChannelStatus{
					ChannelName: "rapl",
					Watts:       &watts,
				})
			}
		}

		hd.dev.PushStatus(status)
	}
	return nil
}

// readTemp returns the channel's temperature, substituting 0°C for
// drivetemp channels whose backing drive is in standby (spec §4.2) and for
// any post-init read failure so the status ring stays contiguous.
func (r *Repository) readTemp(ctx context.Context, tc *tempChannel) float64 {
	if tc.drive != nil {
		standby, err := tc.drive.inStandby()
		if err == nil && standby {
			return 0
		}
	}
	milli, err := hwmon.ReadIntCtx(ctx, tc.inputPath)
	if err != nil {
		return 0
	}
	return device.Round2(float64(milli) / 1000.0)
}

// ApplySetting implements repository.Repository.
func (r *Repository) ApplySetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	r.mu.Lock()
	hd := r.findDevice(deviceUID)
	r.mu.Unlock()
	if hd == nil {
		return repository.ErrDeviceGone
	}

	fc, ok := hd.fans[channelName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoDutyChannel, channelName)
	}

	switch {
	case s.ResetToDefault:
		return hwmon.WriteIntCtx(ctx, fc.enablePath, fc.restoreEnable)
	case s.FixedDuty != nil:
		duty255 := int(*s.FixedDuty/100.0*255.0 + 0.5)
		if duty255 < 0 {
			duty255 = 0
		}
		if duty255 > 255 {
			duty255 = 255
		}
		if err := hwmon.WriteIntCtx(ctx, fc.enablePath, 1); err != nil {
			return err
		}
		return hwmon.WriteIntCtx(ctx, fc.pwmPath, duty255)
	case s.PWMMode != nil && fc.hasMode:
		return hwmon.WriteIntCtx(ctx, fc.modePath, *s.PWMMode)
	default:
		return repository.ErrUnsupportedOperation
	}
}

// Shutdown implements repository.Repository, restoring every fan channel to
// its pre-control default (spec §4.2, §4.9).
func (r *Repository) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for _, hd := range r.devices {
		for _, fc := range hd.fans {
			restore := fc.restoreEnable
			if fc.isLaptopRevert {
				restore = 2
			}
			if err := hwmon.WriteIntCtx(ctx, fc.enablePath, restore); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Repository) findDevice(uid string) *hwmonDevice {
	for _, hd := range r.devices {
		if hd.dev.StableUID == uid {
			return hd
		}
	}
	return nil
}

func readNameOrFallback(devPath, hwmonID string) string {
	data, err := os.ReadFile(filepath.Join(devPath, "name"))
	if err != nil || strings.TrimSpace(string(data)) == "" {
		return "Hwmon#" + strings.TrimPrefix(hwmonID, "hwmon")
	}
	return strings.TrimSpace(string(data))
}

func isClaimedName(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range claimedNamePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func parseIndex(re *regexp.Regexp, filename string) (int, bool) {
	m := re.FindStringSubmatch(filename)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return idx, true
}
