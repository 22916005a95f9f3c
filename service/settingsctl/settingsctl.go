// SPDX-License-Identifier: BSD-3-Clause

package settingsctl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/ipc"
	"github.com/coolercontrol/coolercontrold/pkg/log"
	"github.com/coolercontrol/coolercontrold/pkg/mode"
	"github.com/coolercontrol/coolercontrold/pkg/profile"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
	"github.com/coolercontrol/coolercontrold/service"
)

// Compile-time assertion that Controller implements service.Service.
var _ service.Service = (*Controller)(nil)

// Compile-time assertion that ApplyModeEntry matches mode.ApplyFunc.
var _ mode.ApplyFunc = (*Controller)(nil).ApplyModeEntry

// DeviceLookup resolves a stable device UID to its live handle. The
// daemon supplies this, backed by the direct repository references it
// holds for the tick-critical path (spec §5's no-NATS-round-trip rule).
type DeviceLookup func(deviceUID string) (*device.Device, bool)

// ApplyFunc dispatches a resolved Setting to the repository that owns
// deviceUID. The daemon supplies this too, closing over its repository
// set so settingsctl never needs to know which repo owns which device.
type ApplyFunc func(ctx context.Context, deviceUID, channelName string, s repository.Setting) error

// scheduledEntry is a profile-driven (Graph or Mix) schedule: its duty is
// recomputed every tick by the function pipeline rather than applied once.
type scheduledEntry struct {
	setting    repository.Setting
	normalized map[string][]profile.Point // profile UID -> normalized step function
	pipeline   *pipelineState
}

// pipelineState is the per-channel memory the function pipeline carries
// across ticks: EMA history and Standard-function state keyed by the
// profile UID that owns them (so a Mix's members each keep independent
// state), plus the duty-threshold post-processor's single state.
type pipelineState struct {
	ema       map[string][]float64
	std       map[string]*profile.StandardState
	threshold *profile.ThresholdState
}

func newPipelineState() *pipelineState {
	return &pipelineState{
		ema:       map[string][]float64{},
		std:       map[string]*profile.StandardState{},
		threshold: profile.NewThresholdState(),
	}
}

// Controller is the settings controller and LCD commander.
type Controller struct {
	name string

	mu        sync.Mutex
	profiles  map[string]profile.Profile
	functions map[string]profile.Function
	scheduled map[string]map[string]*scheduledEntry  // profile-driven: deviceUID -> channelName
	immediate map[string]map[string]repository.Setting // one-shot settings kept for Mode capture
	lcd       map[string]map[string]repository.Setting // LCD settings re-pushed by TickLCD
	lcdTicks  uint64

	lookup DeviceLookup
	apply  ApplyFunc

	logger *slog.Logger
}

// New constructs a Controller. lookup and apply must be backed by the
// daemon's direct, in-process repository references.
func New(lookup DeviceLookup, apply ApplyFunc) *Controller {
	return &Controller{
		name:      "settingsctl",
		profiles:  map[string]profile.Profile{},
		functions: map[string]profile.Function{},
		scheduled: map[string]map[string]*scheduledEntry{},
		immediate: map[string]map[string]repository.Setting{},
		lcd:       map[string]map[string]repository.Setting{},
		lookup:    lookup,
		apply:     apply,
	}
}

// Name implements service.Service.
func (c *Controller) Name() string { return c.name }

// Run implements service.Service, serving the profile/function CRUD
// surface and the device.apply_setting schedule endpoint over NATS until
// ctx is cancelled. Per-tick evaluation is driven by Tick/TickLCD, called
// directly by service/daemon, not by this loop.
func (c *Controller) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	c.logger = log.GetGlobalLogger().With("service", c.name)

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("connect to ipc bus: %w", err)
	}
	defer nc.Close()

	svc, err := micro.AddService(nc, micro.Config{
		Name:       "settingsctl",
		Version:    "1.0.0",
		QueueGroup: ipc.QueueGroupSettingsCtl,
	})
	if err != nil {
		return fmt.Errorf("register settings service: %w", err)
	}
	defer svc.Stop()

	profileGroup := svc.AddGroup("profile")
	if err := profileGroup.AddEndpoint("create", micro.HandlerFunc(c.handleProfileCreate)); err != nil {
		return err
	}
	if err := profileGroup.AddEndpoint("update", micro.HandlerFunc(c.handleProfileCreate)); err != nil {
		return err
	}
	if err := profileGroup.AddEndpoint("delete", micro.HandlerFunc(c.handleProfileDelete)); err != nil {
		return err
	}
	if err := profileGroup.AddEndpoint("list", micro.HandlerFunc(c.handleProfileList)); err != nil {
		return err
	}

	functionGroup := svc.AddGroup("function")
	if err := functionGroup.AddEndpoint("create", micro.HandlerFunc(c.handleFunctionCreate)); err != nil {
		return err
	}
	if err := functionGroup.AddEndpoint("update", micro.HandlerFunc(c.handleFunctionCreate)); err != nil {
		return err
	}
	if err := functionGroup.AddEndpoint("delete", micro.HandlerFunc(c.handleFunctionDelete)); err != nil {
		return err
	}
	if err := functionGroup.AddEndpoint("list", micro.HandlerFunc(c.handleFunctionList)); err != nil {
		return err
	}

	deviceGroup := svc.AddGroup("device")
	if err := deviceGroup.AddEndpoint("apply_setting", micro.HandlerFunc(c.handleApplySetting)); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "settings controller ready")
	<-ctx.Done()
	return nil
}

// AddProfile registers or replaces a profile.
func (c *Controller) AddProfile(p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[p.UID] = p
	return nil
}

// RemoveProfile deletes a profile and unschedules every setting that
// referenced it, mirroring the mode controller's own reaction to profile
// deletions (spec §4.8).
func (c *Controller) RemoveProfile(uid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.profiles[uid]; !ok {
		return ErrProfileNotFound
	}
	delete(c.profiles, uid)
	c.removeProfileReferencesLocked(uid)
	return nil
}

// RemoveProfileReferences drops every scheduled setting referencing
// profileUID without requiring the profile itself to still exist; used
// when an external caller (e.g. the mode controller) observes a deletion
// it did not originate.
func (c *Controller) RemoveProfileReferences(profileUID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeProfileReferencesLocked(profileUID)
}

func (c *Controller) removeProfileReferencesLocked(profileUID string) {
	for deviceUID, channels := range c.scheduled {
		for channelName, e := range channels {
			if e.setting.ProfileUID != nil && *e.setting.ProfileUID == profileUID {
				delete(channels, channelName)
			}
		}
		if len(channels) == 0 {
			delete(c.scheduled, deviceUID)
		}
	}
	for _, channels := range c.immediate {
		for channelName, s := range channels {
			if s.ProfileUID != nil && *s.ProfileUID == profileUID {
				delete(channels, channelName)
			}
		}
	}
}

// ListProfiles returns every registered profile.
func (c *Controller) ListProfiles() []profile.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]profile.Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p)
	}
	return out
}

// AddFunction registers or replaces a function.
func (c *Controller) AddFunction(f profile.Function) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.functions[f.UID] = f
	return nil
}

// RemoveFunction deletes a function. Profiles still referencing it fall
// back to the Identity default on their next evaluation.
func (c *Controller) RemoveFunction(uid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.functions[uid]; !ok {
		return ErrFunctionNotFound
	}
	delete(c.functions, uid)
	return nil
}

// ListFunctions returns every registered function.
func (c *Controller) ListFunctions() []profile.Function {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]profile.Function, 0, len(c.functions))
	for _, f := range c.functions {
		out = append(out, f)
	}
	return out
}

// AllScheduled returns a snapshot of every currently scheduled setting,
// keyed by device UID then channel name: immediate, profile-driven and LCD
// settings together. No other package calls it; the mode controller builds
// Modes only from the payloads sent to mode.create.
func (c *Controller) AllScheduled() map[string]map[string]repository.Setting {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := map[string]map[string]repository.Setting{}
	merge := func(deviceUID, channelName string, s repository.Setting) {
		if out[deviceUID] == nil {
			out[deviceUID] = map[string]repository.Setting{}
		}
		out[deviceUID][channelName] = s
	}
	for deviceUID, channels := range c.immediate {
		for channelName, s := range channels {
			merge(deviceUID, channelName, s)
		}
	}
	for deviceUID, channels := range c.scheduled {
		for channelName, e := range channels {
			merge(deviceUID, channelName, e.setting)
		}
	}
	for deviceUID, channels := range c.lcd {
		for channelName, s := range channels {
			merge(deviceUID, channelName, s)
		}
	}
	return out
}

// ApplyModeEntry implements mode.ApplyFunc by routing a captured entry
// back through ScheduleSetting, so a mode activation is re-validated and
// re-scheduled exactly like any other request (spec §4.8).
func (c *Controller) ApplyModeEntry(ctx context.Context, deviceUID, channelName string, entry mode.Entry) error {
	return c.ScheduleSetting(ctx, deviceUID, channelName, entry.Setting)
}

// ScheduleSetting validates s against deviceUID/channelName's capabilities
// (spec §4.6), indexes it, and — unless it is a Graph/Mix profile, which
// the tick pipeline evaluates instead — applies it immediately.
func (c *Controller) ScheduleSetting(ctx context.Context, deviceUID, channelName string, s repository.Setting) error {
	dev, ok := c.lookup(deviceUID)
	if !ok {
		return ErrDeviceNotFound
	}
	ch, err := dev.Channel(channelName)
	if err != nil {
		return err
	}

	switch {
	case s.ResetToDefault:
		c.clearChannel(deviceUID, channelName)
		return c.apply(ctx, deviceUID, channelName, s)

	case s.FixedDuty != nil:
		if ch.Speed == nil || !ch.Speed.FixedEnabled {
			return ErrFixedNotSupported
		}
		c.setImmediate(deviceUID, channelName, s)
		return c.apply(ctx, deviceUID, channelName, s)

	case s.ProfileUID != nil:
		c.mu.Lock()
		p, ok := c.profiles[*s.ProfileUID]
		c.mu.Unlock()
		if !ok {
			return ErrProfileNotFound
		}
		if err := c.validateProfileAgainstChannel(p, deviceUID, ch.Speed); err != nil {
			return err
		}
		if p.Kind == profile.KindFixed || p.Kind == profile.KindDefault {
			// No per-tick pipeline needed: resolve once now.
			var duty float64
			if p.Kind == profile.KindFixed {
				duty = *p.FixedDuty
			}
			c.setImmediate(deviceUID, channelName, s)
			if p.Kind == profile.KindDefault {
				return nil
			}
			return c.apply(ctx, deviceUID, channelName, repository.Setting{FixedDuty: &duty})
		}
		normalized := map[string][]profile.Point{}
		if err := c.buildNormalized(p, ch.Speed.MaxDuty, normalized); err != nil {
			return err
		}
		c.mu.Lock()
		c.clearChannelLocked(deviceUID, channelName)
		if c.scheduled[deviceUID] == nil {
			c.scheduled[deviceUID] = map[string]*scheduledEntry{}
		}
		c.scheduled[deviceUID][channelName] = &scheduledEntry{
			setting:    s,
			normalized: normalized,
			pipeline:   newPipelineState(),
		}
		c.mu.Unlock()
		return nil

	case s.Lighting != nil:
		if !supportsLightingMode(ch.LightingModes, s.Lighting.ModeName) {
			return ErrLightingNotSupported
		}
		c.setImmediate(deviceUID, channelName, s)
		return c.apply(ctx, deviceUID, channelName, s)

	case s.Lcd != nil:
		if !supportsLcdMode(ch.LcdModes, s.Lcd.ModeName) {
			return ErrLcdNotSupported
		}
		c.mu.Lock()
		if c.lcd[deviceUID] == nil {
			c.lcd[deviceUID] = map[string]repository.Setting{}
		}
		c.lcd[deviceUID][channelName] = s
		c.mu.Unlock()
		return nil

	case s.PWMMode != nil:
		if ch.Speed == nil {
			return ErrFixedNotSupported
		}
		c.setImmediate(deviceUID, channelName, s)
		return c.apply(ctx, deviceUID, channelName, s)

	default:
		return ErrEmptySetting
	}
}

func (c *Controller) validateProfileAgainstChannel(p profile.Profile, targetDeviceUID string, sp *device.SpeedOptions) error {
	switch p.Kind {
	case profile.KindFixed:
		if sp == nil || !sp.FixedEnabled {
			return ErrFixedNotSupported
		}
	case profile.KindDefault:
		// no-op profile, always schedulable
	case profile.KindGraph:
		if p.TempSource.DeviceUID == targetDeviceUID {
			if sp == nil || (!sp.ProfilesEnabled && !sp.ManualProfilesEnabled) {
				return ErrGraphNotSupported
			}
		} else if sp == nil || !sp.FixedEnabled {
			return ErrExternalSourceRequiresFixed
		}
	case profile.KindMix:
		if sp == nil || !sp.FixedEnabled {
			return ErrExternalSourceRequiresFixed
		}
	}
	return nil
}

// buildNormalized walks p and every Mix member reachable from it,
// normalizing each Graph profile encountered against its own temp
// source's critical temperature and the target channel's max duty (spec
// §4.6: "criticalTemp = temp_source.device.info.temp_max, maxDuty =
// channel.max_duty").
func (c *Controller) buildNormalized(p profile.Profile, targetMaxDuty float64, out map[string][]profile.Point) error {
	switch p.Kind {
	case profile.KindGraph:
		dev, ok := c.lookup(p.TempSource.DeviceUID)
		if !ok {
			return ErrDeviceNotFound
		}
		pts, err := profile.Normalize(p.SpeedProfile, dev.Info.TempMax, targetMaxDuty)
		if err != nil {
			return err
		}
		out[p.UID] = pts
	case profile.KindMix:
		c.mu.Lock()
		members := make([]profile.Profile, 0, len(p.MemberProfileUIDs))
		for _, uid := range p.MemberProfileUIDs {
			mp, ok := c.profiles[uid]
			if !ok {
				c.mu.Unlock()
				return ErrProfileNotFound
			}
			members = append(members, mp)
		}
		c.mu.Unlock()
		for _, mp := range members {
			if err := c.buildNormalized(mp, targetMaxDuty, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Controller) setImmediate(deviceUID, channelName string, s repository.Setting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearChannelLocked(deviceUID, channelName)
	if c.immediate[deviceUID] == nil {
		c.immediate[deviceUID] = map[string]repository.Setting{}
	}
	c.immediate[deviceUID][channelName] = s
}

func (c *Controller) clearChannel(deviceUID, channelName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearChannelLocked(deviceUID, channelName)
}

func (c *Controller) clearChannelLocked(deviceUID, channelName string) {
	if channels, ok := c.scheduled[deviceUID]; ok {
		delete(channels, channelName)
	}
	if channels, ok := c.immediate[deviceUID]; ok {
		delete(channels, channelName)
	}
	if channels, ok := c.lcd[deviceUID]; ok {
		delete(channels, channelName)
	}
}

func supportsLightingMode(modes []device.LightingMode, name string) bool {
	for _, m := range modes {
		if m.Name == name {
			return true
		}
	}
	return false
}

func supportsLcdMode(modes []device.LcdMode, name string) bool {
	for _, m := range modes {
		if m.Name == name {
			return true
		}
	}
	return false
}

func (c *Controller) functionFor(uid string) profile.Function {
	if uid == "" {
		return profile.DefaultFunction()
	}
	c.mu.Lock()
	f, ok := c.functions[uid]
	c.mu.Unlock()
	if !ok {
		return profile.DefaultFunction()
	}
	return f
}
