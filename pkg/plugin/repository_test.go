// SPDX-License-Identifier: BSD-3-Clause

package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/profile"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// fakeDeviceService is a minimal in-memory DeviceService used to exercise
// Repository without a real plugin transport.
type fakeDeviceService struct {
	devices       []*device.Device
	statuses      map[string]device.Status
	manualEnabled map[string]bool
	lastFixedDuty map[string]float64
	shutdownCalls []string
	healthErr     error
}

func newFakeDeviceService(devices ...*device.Device) *fakeDeviceService {
	return &fakeDeviceService{
		devices:       devices,
		statuses:      make(map[string]device.Status),
		manualEnabled: make(map[string]bool),
		lastFixedDuty: make(map[string]float64),
	}
}

func (f *fakeDeviceService) ListDevices(ctx context.Context) ([]*device.Device, error) {
	return f.devices, nil
}

func (f *fakeDeviceService) InitializeDevice(ctx context.Context, deviceUID string) error {
	return nil
}

func (f *fakeDeviceService) Status(ctx context.Context, deviceUID string) (device.Status, error) {
	s, ok := f.statuses[deviceUID]
	if !ok {
		return device.Status{}, errors.New("no status")
	}
	return s, nil
}

func (f *fakeDeviceService) ResetChannel(ctx context.Context, deviceUID, channelName string) error {
	return nil
}

func (f *fakeDeviceService) EnableManualFanControl(ctx context.Context, deviceUID, channelName string) error {
	f.manualEnabled[deviceUID+"/"+channelName] = true
	return nil
}

func (f *fakeDeviceService) FixedDuty(ctx context.Context, deviceUID, channelName string, dutyPercent float64) error {
	if !f.manualEnabled[deviceUID+"/"+channelName] {
		return errors.New("manual control not enabled")
	}
	f.lastFixedDuty[deviceUID+"/"+channelName] = dutyPercent
	return nil
}

func (f *fakeDeviceService) SpeedProfile(ctx context.Context, deviceUID, channelName string, points []profile.Point) error {
	return nil
}

func (f *fakeDeviceService) Lighting(ctx context.Context, deviceUID, channelName string, s repository.LightingSetting) error {
	return nil
}

func (f *fakeDeviceService) Lcd(ctx context.Context, deviceUID, channelName string, s repository.LcdSetting) error {
	return nil
}

func (f *fakeDeviceService) Shutdown(ctx context.Context, deviceUID string) error {
	f.shutdownCalls = append(f.shutdownCalls, deviceUID)
	return nil
}

func (f *fakeDeviceService) Health(ctx context.Context) error {
	return f.healthErr
}

func mustDevice(t *testing.T, name string) *device.Device {
	t.Helper()
	d, err := device.New(name, device.KindComposite, 0, "", device.DeviceInfo{
		Channels: map[string]device.ChannelInfo{"fan1": {Name: "fan1"}},
	}, 8)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	return d
}

func TestInitializeDevicesPopulatesDevices(t *testing.T) {
	d1 := mustDevice(t, "plugin-dev-1")
	svc := newFakeDeviceService(d1)
	r := New(device.KindComposite, svc)

	if err := r.InitializeDevices(context.Background()); err != nil {
		t.Fatalf("InitializeDevices: %v", err)
	}
	if got := r.Devices(); len(got) != 1 || got[0] != d1 {
		t.Fatalf("Devices() = %v, want [%v]", got, d1)
	}
}

func TestPreloadAndUpdateStatusesCommitsToDevice(t *testing.T) {
	d1 := mustDevice(t, "plugin-dev-1")
	svc := newFakeDeviceService(d1)
	svc.statuses[d1.StableUID] = device.Status{TimestampUnix: 1, Temps: []device.TempStatus{{ChannelName: "core", Celsius: 42}}}

	r := New(device.KindComposite, svc)
	ctx := context.Background()
	if err := r.InitializeDevices(ctx); err != nil {
		t.Fatalf("InitializeDevices: %v", err)
	}
	if err := r.PreloadStatuses(ctx); err != nil {
		t.Fatalf("PreloadStatuses: %v", err)
	}
	if err := r.UpdateStatuses(ctx); err != nil {
		t.Fatalf("UpdateStatuses: %v", err)
	}

	latest, ok := d1.Latest()
	if !ok {
		t.Fatal("expected a committed status")
	}
	if celsius, ok := latest.TempByChannel("core"); !ok || celsius != 42 {
		t.Fatalf("core temp = %v, %v, want 42, true", celsius, ok)
	}
}

func TestApplySettingFixedDutyEnablesManualControlFirst(t *testing.T) {
	d1 := mustDevice(t, "plugin-dev-1")
	svc := newFakeDeviceService(d1)
	r := New(device.KindComposite, svc)

	duty := 75.0
	if err := r.ApplySetting(context.Background(), d1.StableUID, "fan1", repository.Setting{FixedDuty: &duty}); err != nil {
		t.Fatalf("ApplySetting: %v", err)
	}
	if got := svc.lastFixedDuty[d1.StableUID+"/fan1"]; got != duty {
		t.Fatalf("lastFixedDuty = %v, want %v", got, duty)
	}
}

func TestApplySettingUnsupportedForProfileUID(t *testing.T) {
	svc := newFakeDeviceService()
	r := New(device.KindComposite, svc)

	profileUID := "p1"
	err := r.ApplySetting(context.Background(), "d1", "fan1", repository.Setting{ProfileUID: &profileUID})
	if !errors.Is(err, repository.ErrUnsupportedOperation) {
		t.Fatalf("err = %v, want ErrUnsupportedOperation", err)
	}
}

func TestShutdownReleasesEveryDevice(t *testing.T) {
	d1 := mustDevice(t, "plugin-dev-1")
	d2 := mustDevice(t, "plugin-dev-2")
	svc := newFakeDeviceService(d1, d2)
	r := New(device.KindComposite, svc)

	if err := r.InitializeDevices(context.Background()); err != nil {
		t.Fatalf("InitializeDevices: %v", err)
	}
	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if len(svc.shutdownCalls) != 2 {
		t.Fatalf("shutdownCalls = %v, want 2 entries", svc.shutdownCalls)
	}
}

func TestHealthDelegatesToDeviceService(t *testing.T) {
	svc := newFakeDeviceService()
	svc.healthErr = errors.New("plugin unreachable")
	r := New(device.KindComposite, svc)

	if err := r.Health(context.Background()); err == nil {
		t.Fatal("expected health error to propagate")
	}
}
