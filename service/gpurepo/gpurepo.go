// SPDX-License-Identifier: BSD-3-Clause

package gpurepo

import (
	"context"
	"sync"
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/hwmon"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

type config struct {
	hwmonBasePath string
}

func defaultConfig() *config {
	return &config{hwmonBasePath: hwmon.DefaultHwmonPath}
}

// Option configures a Repository.
type Option interface{ apply(*config) }

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithHwmonBasePath overrides the default /sys/class/hwmon root, used in tests.
func WithHwmonBasePath(path string) Option {
	return optionFunc(func(c *config) { c.hwmonBasePath = path })
}

// Repository implements repository.Repository for AMD and NVIDIA discrete
// GPUs (spec §2: "nvidia-smi / amdgpu hwmon").
type Repository struct {
	cfg *config

	mu  sync.Mutex
	amd []*amdGPU
	nv  []*nvidiaGPU
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
func (r *Repository) Kind() device.Kind { return device.KindGPU }

// InitializeDevices implements repository.Repository.
func (r *Repository) InitializeDevices(ctx context.Context) error {
	amd := discoverAMD(ctx, r.cfg.hwmonBasePath, 0)
	nv := discoverNVIDIA(ctx, len(amd))

	r.mu.Lock()
	r.amd = amd
	r.nv = nv
	r.mu.Unlock()
	return nil
}

// Devices implements repository.Repository.
func (r *Repository) Devices() []*device.Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*device.Device, 0, len(r.amd)+len(r.nv))
	for _, g := range r.amd {
		out = append(out, g.dev)
	}
	for _, g := range r.nv {
		out = append(out, g.dev)
	}
	return out
}

// PreloadStatuses implements repository.Repository. nvidia-smi and sysfs
// reads happen directly in UpdateStatuses since both are cheap relative to
// the tick period; no separate preload queue is needed here.
func (r *Repository) PreloadStatuses(ctx context.Context) error { return nil }

// UpdateStatuses implements repository.Repository.
func (r *Repository) UpdateStatuses(ctx context.Context) error {
	r.mu.Lock()
	amd := append([]*amdGPU(nil), r.amd...)
	r.mu.Unlock()

	now := time.Now().Unix()
	for _, g := range amd {
		status := device.Status{TimestampUnix: now}
		if g.temp != "" {
			if milli, err := hwmon.ReadIntCtx(ctx, g.temp); err == nil {
				status.Temps = append(status.Temps, device.TempStatus{ChannelName: "gpu", Celsius: device.Round2(float64(milli) / 1000.0)})
			}
		}
		if g.fan != nil {
			var rpmPtr, dutyPtr *float64
			if rpm, err := hwmon.ReadIntCtx(ctx, g.fan.fanInputPath); err == nil {
				v := float64(rpm)
				rpmPtr = &v
			}
			if duty, err := hwmon.ReadIntCtx(ctx, g.fan.pwmPath); err == nil {
				v := device.Round2(float64(duty) / 255.0 * 100.0)
				dutyPtr = &v
			}
			status.Channels = append(status.Channels, device.ChannelStatus{ChannelName: "fan", RPM: rpmPtr, DutyPercent: dutyPtr})
		}
		g.dev.PushStatus(status)
	}

	readings, err := queryNVIDIASMI(ctx)
	if err == nil {
		r.mu.Lock()
		nv := append([]*nvidiaGPU(nil), r.nv...)
		r.mu.Unlock()
		for _, g := range nv {
			for _, reading := range readings {
				if reading.index != g.index {
					continue
				}
				rpm := reading.fanPercent
				mhz := reading.clockMHz
				watts := device.Round2(reading.powerW)
				g.dev.PushStatus(device.Status{
					TimestampUnix: now,
					Temps:         []device.TempStatus{{ChannelName: "gpu", Celsius: device.Round2(reading.tempC)}},
					Channels: []device.ChannelStatus{
						{ChannelName: "fan", DutyPercent: &rpm},
						{ChannelName: "core", MHz: &mhz, Watts: &watts},
					},
				})
				break
			}
		}
	}
	return nil
}

// ApplySetting implements repository.Repository. Only AMD cards exposing a
// writable pwm1 support fixed-duty control; NVIDIA fan control on Linux
// requires vendor tools this daemon does not drive.
func (r *Repository) ApplySetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.amd {
		if g.dev.StableUID != deviceUID {
			continue
		}
		if g.fan == nil || channelName != "fan" {
			return repository.ErrUnsupportedOperation
		}
		switch {
		case s.ResetToDefault:
			return hwmon.WriteIntCtx(ctx, g.fan.enablePath, g.fan.restoreEnable)
		case s.FixedDuty != nil:
			duty255 := int(*s.FixedDuty/100.0*255.0 + 0.5)
			if err := hwmon.WriteIntCtx(ctx, g.fan.enablePath, 1); err != nil {
				return err
			}
			return hwmon.WriteIntCtx(ctx, g.fan.pwmPath, duty255)
		default:
			return repository.ErrUnsupportedOperation
		}
	}
	for _, g := range r.nv {
		if g.dev.StableUID == deviceUID {
			return repository.ErrUnsupportedOperation
		}
	}
	return repository.ErrDeviceGone
}

// Shutdown implements repository.Repository, restoring any AMD fan channel
// under manual control back to its discovered default.
func (r *Repository) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for _, g := range r.amd {
		if g.fan == nil {
			continue
		}
		if err := hwmon.WriteIntCtx(ctx, g.fan.enablePath, g.fan.restoreEnable); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
