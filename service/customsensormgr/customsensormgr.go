// SPDX-License-Identifier: BSD-3-Clause

package customsensormgr

import (
	"context"
	"sync"
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/customsensor"
	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// RingCapacity matches the other repositories' status depth.
const RingCapacity = 1860

// CompositeDeviceName is the single composite device every custom sensor
// appears under as a channel.
const CompositeDeviceName = "Custom Sensors"

// TempResolver reads the latest temperature of another repository's
// channel. service/daemon supplies this (its resolveChannelValue) since it
// is the component holding every repository (spec §4.4).
type TempResolver func(deviceUID, channelName string) (celsius float64, ok bool)

// DeleteHook is called by RemoveSensor with the sensor's ID before the
// sensor is removed. service/daemon registers no hook, so removing a sensor
// does not clear settings scheduled against it.
type DeleteHook func(sensorID string)

// Repository implements repository.Repository for custom sensors.
type Repository struct {
	mu       sync.Mutex
	sensors  map[string]customsensor.CustomSensor
	dev      *device.Device
	resolver TempResolver
	onDelete DeleteHook
}

// New constructs an empty Repository. Sensors are added with AddSensor.
func New(resolver TempResolver) *Repository {
	return &Repository{
		sensors:  map[string]customsensor.CustomSensor{},
		resolver: resolver,
	}
}

// SetDeleteHook registers the callback invoked when a sensor is removed.
func (r *Repository) SetDeleteHook(hook DeleteHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDelete = hook
}

// Kind implements repository.Repository.
func (r *Repository) Kind() device.Kind { return device.KindCustomSensors }

// InitializeDevices implements repository.Repository, building the single
// composite device from whatever sensors have been registered so far.
func (r *Repository) InitializeDevices(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rebuildDeviceLocked()
}

func (r *Repository) rebuildDeviceLocked() error {
	info := device.DeviceInfo{Channels: map[string]device.ChannelInfo{}}
	for id := range r.sensors {
		info.Channels[id] = device.ChannelInfo{Name: id}
	}
	dev, err := device.New(CompositeDeviceName, device.KindCustomSensors, 0, "", info, RingCapacity)
	if err != nil {
		return err
	}
	if r.dev != nil {
		dev.PushStatus(lastStatusOr(r.dev))
	}
	r.dev = dev
	return nil
}

func lastStatusOr(dev *device.Device) device.Status {
	if s, ok := dev.Latest(); ok {
		return s
	}
	return device.Status{}
}

// AddSensor registers or replaces a custom sensor and rebuilds the
// composite device's channel catalog.
func (r *Repository) AddSensor(ctx context.Context, s customsensor.CustomSensor) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sensors[s.ID] = s
	return r.rebuildDeviceLocked()
}

// RemoveSensor deletes a custom sensor, notifying the delete hook so any
// scheduled setting pointing at it can be cleared first (spec §4.4).
func (r *Repository) RemoveSensor(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sensors[id]; !ok {
		return ErrSensorNotFound
	}
	if r.onDelete != nil {
		r.onDelete(id)
	}
	delete(r.sensors, id)
	return r.rebuildDeviceLocked()
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

// PreloadStatuses implements repository.Repository. Resolution depends on
// every other repository's committed status, so it happens in
// UpdateStatuses instead; this repository must run last in the sequential
// update phase (spec §4.4, §4.9).
func (r *Repository) PreloadStatuses(ctx context.Context) error { return nil }

// UpdateStatuses implements repository.Repository.
func (r *Repository) UpdateStatuses(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return nil
	}

	status := device.Status{TimestampUnix: time.Now().Unix()}
	for id, sensor := range r.sensors {
		celsius := r.resolveSensor(sensor)
		status.Temps = append(status.Temps, device.TempStatus{ChannelName: id, Celsius: celsius})
	}
	r.dev.PushStatus(status)
	return nil
}

// resolveSensor computes one sensor's current reading, per spec §4.4:
// missing sources are skipped rather than failing the sensor, and file IO
// errors surface as a 0 reading.
func (r *Repository) resolveSensor(sensor customsensor.CustomSensor) float64 {
	if sensor.Kind == customsensor.KindFile {
		v, err := customsensor.ReadFileReading(sensor.FilePath)
		if err != nil {
			return 0
		}
		return v
	}

	var readings []float64
	var resolvedSources []customsensor.Source
	for _, src := range sensor.Sources {
		if r.resolver == nil {
			continue
		}
		v, ok := r.resolver(src.TempSource.DeviceUID, src.TempSource.ChannelName)
		if !ok {
			continue
		}
		readings = append(readings, v)
		resolvedSources = append(resolvedSources, src)
	}
	if len(readings) == 0 {
		return 0
	}

	// Reduce keys WeightedAvg off sensor.Sources positionally, so a
	// filtered sensor carrying only the resolved sources is passed instead
	// of the original.
	filtered := sensor
	filtered.Sources = resolvedSources
	v, err := filtered.Reduce(readings)
	if err != nil {
		return 0
	}
	return v
}

// ApplySetting implements repository.Repository. Custom sensors are
// read-only.
func (r *Repository) ApplySetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	return repository.ErrUnsupportedOperation
}

// Shutdown implements repository.Repository.
func (r *Repository) Shutdown(ctx context.Context) error { return nil }
