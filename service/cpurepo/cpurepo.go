// SPDX-License-Identifier: BSD-3-Clause

package cpurepo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// RingCapacity matches the hwmon repository's status depth.
const RingCapacity = 1860

// sensorKeywords selects which gopsutil sensor keys belong to the CPU
// package temperature rather than some unrelated platform sensor.
var sensorKeywords = []string{"coretemp", "k10temp", "cpu_thermal", "zenpower"}

// Repository implements repository.Repository for CPU package temperature
// and load (spec §2: "psutil-equivalent temp + load").
type Repository struct {
	mu  sync.Mutex
	dev *device.Device

	preloadedLoad  float64
	preloadedTemps map[string]float64
}

// New constructs a Repository. Discovery happens in InitializeDevices.
func New() *Repository {
	return &Repository{}
}

// Kind implements repository.Repository.
func (r *Repository) Kind() device.Kind { return device.KindCPU }

// InitializeDevices implements repository.Repository.
func (r *Repository) InitializeDevices(ctx context.Context) error {
	temps, err := sensors.SensorsTemperaturesWithContext(ctx)
	if err != nil {
		temps = nil // absence of sensors support is not fatal; load-only device still works
	}

	info := device.DeviceInfo{Channels: map[string]device.ChannelInfo{
		"load": {Name: "load"},
	}}
	for _, t := range temps {
		if matchesCPU(t.SensorKey) {
			info.Channels[t.SensorKey] = device.ChannelInfo{Name: t.SensorKey}
		}
	}

	dev, err := device.New("CPU", device.KindCPU, 0, "", info, RingCapacity)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInit, err)
	}

	r.mu.Lock()
	r.dev = dev
	r.mu.Unlock()
	return nil
}

// Devices implements repository.Repository.
func (r *Repository) Devices() []*device.Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return nil
	}
	return []*device.Device{r.dev}
}

// PreloadStatuses implements repository.Repository.
func (r *Repository) PreloadStatuses(ctx context.Context) error {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	var load float64
	if err == nil && len(percents) > 0 {
		load = percents[0]
	}

	temps, _ := sensors.SensorsTemperaturesWithContext(ctx)
	tempMap := map[string]float64{}
	for _, t := range temps {
		if matchesCPU(t.SensorKey) {
			tempMap[t.SensorKey] = t.Temperature
		}
	}

	r.mu.Lock()
	r.preloadedLoad = load
	r.preloadedTemps = tempMap
	r.mu.Unlock()
	return nil
}

// UpdateStatuses implements repository.Repository.
func (r *Repository) UpdateStatuses(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return nil
	}

	load := device.Round2(r.preloadedLoad)
	status := device.Status{
		TimestampUnix: time.Now().Unix(),
		Channels: []device.ChannelStatus{
			// load is informational only; DutyPercent is repurposed here
			// since ChannelStatus has no dedicated load metric.
			{ChannelName: "load", DutyPercent: &load},
		},
	}
	for name, celsius := range r.preloadedTemps {
		status.Temps = append(status.Temps, device.TempStatus{ChannelName: name, Celsius: device.Round2(celsius)})
	}

	r.dev.PushStatus(status)
	return nil
}

// ApplySetting implements repository.Repository. CPU channels are
// observational only.
func (r *Repository) ApplySetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	return repository.ErrUnsupportedOperation
}

// Shutdown implements repository.Repository.
func (r *Repository) Shutdown(ctx context.Context) error { return nil }

func matchesCPU(sensorKey string) bool {
	lower := strings.ToLower(sensorKey)
	for _, kw := range sensorKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
