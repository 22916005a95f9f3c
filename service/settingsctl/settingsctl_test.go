// SPDX-License-Identifier: BSD-3-Clause

package settingsctl

import (
	"context"
	"sync"
	"testing"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/mode"
	"github.com/coolercontrol/coolercontrold/pkg/profile"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// testHarness wires a Controller to an in-memory device set and records
// every applied setting, standing in for the daemon's direct repository
// references.
type testHarness struct {
	mu      sync.Mutex
	devices map[string]*device.Device
	applied []appliedCall
}

type appliedCall struct {
	deviceUID, channelName string
	setting                repository.Setting
}

func newHarness() *testHarness {
	return &testHarness{devices: map[string]*device.Device{}}
}

func (h *testHarness) lookup(uid string) (*device.Device, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.devices[uid]
	return d, ok
}

func (h *testHarness) apply(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.applied = append(h.applied, appliedCall{deviceUID, channelName, s})
	return nil
}

func (h *testHarness) add(d *device.Device) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.devices[d.StableUID] = d
}

func mustDevice(t *testing.T, name string, channels map[string]device.ChannelInfo, tempMax float64) *device.Device {
	t.Helper()
	d, err := device.New(name, device.KindHwmon, 0, "", device.DeviceInfo{
		Channels: channels,
		TempMax:  tempMax,
	}, 4)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	return d
}

func TestScheduleSettingRejectsUnknownDevice(t *testing.T) {
	h := newHarness()
	c := New(h.lookup, h.apply)

	err := c.ScheduleSetting(context.Background(), "missing", "pump", repository.Setting{})
	if err != ErrDeviceNotFound {
		t.Fatalf("got %v, want ErrDeviceNotFound", err)
	}
}

func TestScheduleSettingRejectsFixedDutyWhenUnsupported(t *testing.T) {
	h := newHarness()
	dev := mustDevice(t, "board", map[string]device.ChannelInfo{
		"pump": {Name: "pump", Speed: &device.SpeedOptions{}},
	}, 80)
	h.add(dev)
	c := New(h.lookup, h.apply)

	duty := 50.0
	err := c.ScheduleSetting(context.Background(), dev.StableUID, "pump", repository.Setting{FixedDuty: &duty})
	if err != ErrFixedNotSupported {
		t.Fatalf("got %v, want ErrFixedNotSupported", err)
	}
}

func TestScheduleSettingFixedDutyAppliesImmediately(t *testing.T) {
	h := newHarness()
	dev := mustDevice(t, "board", map[string]device.ChannelInfo{
		"pump": {Name: "pump", Speed: &device.SpeedOptions{FixedEnabled: true}},
	}, 80)
	h.add(dev)
	c := New(h.lookup, h.apply)

	duty := 50.0
	if err := c.ScheduleSetting(context.Background(), dev.StableUID, "pump", repository.Setting{FixedDuty: &duty}); err != nil {
		t.Fatalf("ScheduleSetting: %v", err)
	}
	if len(h.applied) != 1 {
		t.Fatalf("got %d applied calls, want 1", len(h.applied))
	}
	scheduled := c.AllScheduled()
	if scheduled[dev.StableUID]["pump"].FixedDuty == nil {
		t.Fatalf("expected fixed duty to be retained for mode capture")
	}
}

func TestScheduleSettingGraphRequiresManualProfilesEnabled(t *testing.T) {
	h := newHarness()
	dev := mustDevice(t, "board", map[string]device.ChannelInfo{
		"fan":  {Name: "fan", Speed: &device.SpeedOptions{}},
		"temp": {Name: "temp"},
	}, 80)
	h.add(dev)
	c := New(h.lookup, h.apply)

	profileUID := "graph1"
	if err := c.AddProfile(profile.Profile{
		UID:          profileUID,
		Kind:         profile.KindGraph,
		SpeedProfile: []profile.Point{{Temp: 30, Duty: 20}, {Temp: 60, Duty: 80}},
		TempSource:   &profile.TempSource{DeviceUID: dev.StableUID, ChannelName: "temp"},
	}); err != nil {
		t.Fatalf("AddProfile: %v", err)
	}

	err := c.ScheduleSetting(context.Background(), dev.StableUID, "fan", repository.Setting{ProfileUID: &profileUID})
	if err != ErrGraphNotSupported {
		t.Fatalf("got %v, want ErrGraphNotSupported", err)
	}
}

func TestTickDispatchesGraphProfileDuty(t *testing.T) {
	h := newHarness()
	dev := mustDevice(t, "board", map[string]device.ChannelInfo{
		"fan":  {Name: "fan", Speed: &device.SpeedOptions{ManualProfilesEnabled: true, MaxDuty: 100}},
		"temp": {Name: "temp"},
	}, 80)
	h.add(dev)
	dev.PushStatus(device.Status{Temps: []device.TempStatus{{ChannelName: "temp", Celsius: 45}}})

	c := New(h.lookup, h.apply)

	profileUID := "graph1"
	if err := c.AddProfile(profile.Profile{
		UID:          profileUID,
		Kind:         profile.KindGraph,
		SpeedProfile: []profile.Point{{Temp: 30, Duty: 20}, {Temp: 60, Duty: 80}},
		TempSource:   &profile.TempSource{DeviceUID: dev.StableUID, ChannelName: "temp"},
	}); err != nil {
		t.Fatalf("AddProfile: %v", err)
	}

	if err := c.ScheduleSetting(context.Background(), dev.StableUID, "fan", repository.Setting{ProfileUID: &profileUID}); err != nil {
		t.Fatalf("ScheduleSetting: %v", err)
	}

	c.Tick(context.Background())

	if len(h.applied) != 1 {
		t.Fatalf("got %d applied calls, want 1", len(h.applied))
	}
	got := h.applied[0]
	if got.deviceUID != dev.StableUID || got.channelName != "fan" {
		t.Fatalf("unexpected dispatch target: %+v", got)
	}
	if got.setting.FixedDuty == nil {
		t.Fatalf("expected a fixed duty dispatch")
	}
}

func TestTickSuppressesSmallChangesUnderThreshold(t *testing.T) {
	h := newHarness()
	dev := mustDevice(t, "board", map[string]device.ChannelInfo{
		"fan":  {Name: "fan", Speed: &device.SpeedOptions{ManualProfilesEnabled: true, MaxDuty: 100}},
		"temp": {Name: "temp"},
	}, 80)
	h.add(dev)
	dev.PushStatus(device.Status{Temps: []device.TempStatus{{ChannelName: "temp", Celsius: 45}}})

	c := New(h.lookup, h.apply)
	profileUID := "graph1"
	_ = c.AddProfile(profile.Profile{
		UID:          profileUID,
		Kind:         profile.KindGraph,
		SpeedProfile: []profile.Point{{Temp: 30, Duty: 20}, {Temp: 60, Duty: 80}},
		TempSource:   &profile.TempSource{DeviceUID: dev.StableUID, ChannelName: "temp"},
	})
	_ = c.ScheduleSetting(context.Background(), dev.StableUID, "fan", repository.Setting{ProfileUID: &profileUID})

	c.Tick(context.Background()) // first tick always applies and commits the baseline
	if len(h.applied) != 1 {
		t.Fatalf("got %d applied calls after first tick, want 1", len(h.applied))
	}

	// A temperature change producing a near-identical duty should be
	// suppressed by the duty-threshold post-processor (spec §4.5 item 4).
	dev.PushStatus(device.Status{Temps: []device.TempStatus{{ChannelName: "temp", Celsius: 45.5}}})
	c.Tick(context.Background())
	if len(h.applied) != 1 {
		t.Fatalf("got %d applied calls after second tick, want still 1 (suppressed)", len(h.applied))
	}
}

func TestResetToDefaultClearsSchedule(t *testing.T) {
	h := newHarness()
	dev := mustDevice(t, "board", map[string]device.ChannelInfo{
		"pump": {Name: "pump", Speed: &device.SpeedOptions{FixedEnabled: true}},
	}, 80)
	h.add(dev)
	c := New(h.lookup, h.apply)

	duty := 50.0
	_ = c.ScheduleSetting(context.Background(), dev.StableUID, "pump", repository.Setting{FixedDuty: &duty})
	if err := c.ScheduleSetting(context.Background(), dev.StableUID, "pump", repository.Setting{ResetToDefault: true}); err != nil {
		t.Fatalf("ScheduleSetting(reset): %v", err)
	}

	scheduled := c.AllScheduled()
	if _, ok := scheduled[dev.StableUID]["pump"]; ok {
		t.Fatalf("expected reset to clear the scheduled setting")
	}
	if len(h.applied) != 2 {
		t.Fatalf("got %d applied calls, want 2 (fixed duty then reset)", len(h.applied))
	}
}

func TestApplyModeEntryRoutesThroughScheduleSetting(t *testing.T) {
	h := newHarness()
	dev := mustDevice(t, "board", map[string]device.ChannelInfo{
		"pump": {Name: "pump", Speed: &device.SpeedOptions{FixedEnabled: true}},
	}, 80)
	h.add(dev)
	c := New(h.lookup, h.apply)

	duty := 33.0
	entry := mode.Entry{DeviceUID: dev.StableUID, ChannelName: "pump", Setting: repository.Setting{FixedDuty: &duty}}
	if err := c.ApplyModeEntry(context.Background(), dev.StableUID, "pump", entry); err != nil {
		t.Fatalf("ApplyModeEntry: %v", err)
	}
	if len(h.applied) != 1 {
		t.Fatalf("got %d applied calls, want 1", len(h.applied))
	}
}
