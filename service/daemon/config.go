// SPDX-License-Identifier: BSD-3-Clause

package daemon

import (
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/device"
	"github.com/coolercontrol/coolercontrold/pkg/notify"
	"github.com/coolercontrol/coolercontrold/pkg/plugin"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
	"github.com/coolercontrol/coolercontrold/pkg/telemetry"
	"github.com/coolercontrol/coolercontrold/service"
	"github.com/coolercontrol/coolercontrold/service/alertmgr"
	"github.com/coolercontrol/coolercontrold/service/ipc"
	"github.com/coolercontrol/coolercontrold/service/modemgr"
	"github.com/coolercontrol/coolercontrold/service/settingsctl"
)

// defaultTickInterval is the control loop period (spec §4.9: "one tick per second").
const defaultTickInterval = time.Second

// defaultPreloadTimeout bounds the concurrent preload fan-out (spec §4.9
// step 3, §5).
const defaultPreloadTimeout = 400 * time.Millisecond

// defaultLCDTimeout bounds one LCD push (spec §5).
const defaultLCDTimeout = 2 * time.Second

// defaultStartupDelay is the minimum wait after a resume-from-suspend
// signal before the loop resumes ticking (spec §4.9 step 2).
const defaultStartupDelay = time.Second

// config holds the daemon's supervised services and tick-loop wiring.
// Exported fields are discovered reflectively and added to the
// supervision tree if they implement service.Service, mirroring
// service/operator's pattern in the teacher repo.
type config struct {
	name        string
	id          string
	disableLogo bool
	customLogo  string
	otelSetup   func()
	timeout     time.Duration

	tickInterval   time.Duration
	preloadTimeout time.Duration
	lcdTimeout     time.Duration
	startupDelay   time.Duration
	applyOnBoot    bool

	notifier notify.Dispatcher

	repositories  []repository.Repository
	pluginDevices []*plugin.Repository

	ipc *ipc.IPC

	Settingsctl *settingsctl.Controller
	Alertmgr    *alertmgr.Manager
	Modemgr     *modemgr.Manager
	Sleepwatch  service.Service
	Logbufsrv   service.Service
	Telemetry   service.Service

	extraServices []service.Service
}

// Option configures a Daemon.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithName sets the daemon's service name.
func WithName(name string) Option {
	return optionFunc(func(c *config) { c.name = name })
}

// WithID pins the daemon's persistent identity instead of deriving one
// from /var/lib/coolercontrold/id.
func WithID(id string) Option {
	return optionFunc(func(c *config) { c.id = id })
}

// DisableLogo suppresses the startup banner.
func DisableLogo() Option {
	return optionFunc(func(c *config) { c.disableLogo = true })
}

// WithCustomLogo overrides the startup banner text.
func WithCustomLogo(logo string) Option {
	return optionFunc(func(c *config) { c.customLogo = logo })
}

// WithTimeout sets the per-child startup/shutdown timeout for the
// supervision tree.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *config) { c.timeout = d })
}

// WithTickInterval overrides the control loop period.
func WithTickInterval(d time.Duration) Option {
	return optionFunc(func(c *config) { c.tickInterval = d })
}

// WithPreloadTimeout overrides the concurrent preload soft timeout.
func WithPreloadTimeout(d time.Duration) Option {
	return optionFunc(func(c *config) { c.preloadTimeout = d })
}

// WithApplyOnBoot enables reinitializing repositories and reapplying the
// active mode after a resume-from-suspend (spec §4.9 step 2).
func WithApplyOnBoot(enabled bool) Option {
	return optionFunc(func(c *config) { c.applyOnBoot = enabled })
}

// WithNotifier sets the desktop-notification dispatcher used for alert
// and shutdown events (spec §6).
func WithNotifier(n notify.Dispatcher) Option {
	return optionFunc(func(c *config) { c.notifier = n })
}

// WithRepositories overrides the default repository set. Order matters:
// custom sensors must be last since it reads other repositories' just-
// committed statuses (spec §4.1).
func WithRepositories(repos ...repository.Repository) Option {
	return optionFunc(func(c *config) { c.repositories = repos })
}

// WithPluginDevice appends a pkg/plugin-backed repository wrapping svc,
// adding a device family supplied by an out-of-process plugin (spec §1,
// §6) without requiring the caller to implement repository.Repository
// directly. Applied after the default repository set is resolved, so
// custom sensors still run last.
func WithPluginDevice(kind device.Kind, svc plugin.DeviceService) Option {
	return optionFunc(func(c *config) { c.pluginDevices = append(c.pluginDevices, plugin.New(kind, svc)) })
}

// WithIPC overrides the embedded IPC bus service.
func WithIPC(i *ipc.IPC) Option {
	return optionFunc(func(c *config) { c.ipc = i })
}

// WithSettingsctl overrides the settings controller. Supplying one
// disables the daemon's default lookup/apply wiring; the caller is
// responsible for wiring it to the configured repositories instead.
func WithSettingsctl(s *settingsctl.Controller) Option {
	return optionFunc(func(c *config) { c.Settingsctl = s })
}

// WithAlertmgr overrides the alert manager.
func WithAlertmgr(m *alertmgr.Manager) Option {
	return optionFunc(func(c *config) { c.Alertmgr = m })
}

// WithModemgr overrides the mode manager.
func WithModemgr(m *modemgr.Manager) Option {
	return optionFunc(func(c *config) { c.Modemgr = m })
}

// WithSleepwatch overrides the sleep/resume listener.
func WithSleepwatch(s service.Service) Option {
	return optionFunc(func(c *config) { c.Sleepwatch = s })
}

// WithLogbufsrv overrides the log buffer/health server.
func WithLogbufsrv(s service.Service) Option {
	return optionFunc(func(c *config) { c.Logbufsrv = s })
}

// WithTelemetry attaches an optional OTel collector relay service.
func WithTelemetry(t service.Service) Option {
	return optionFunc(func(c *config) { c.Telemetry = t })
}

// WithExtraService registers an additional service.Service under
// supervision, reachable by name but outside the reflectively-discovered
// config fields.
func WithExtraService(s service.Service) Option {
	return optionFunc(func(c *config) { c.extraServices = append(c.extraServices, s) })
}

func defaultOtelSetup() { telemetry.DefaultSetup() }
