// SPDX-License-Identifier: BSD-3-Clause

package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"cirello.io/oversight/v2"
	"github.com/arunsworld/nursery"
	"github.com/nats-io/nats.go"

	"github.com/coolercontrol/coolercontrold/pkg/id"
	"github.com/coolercontrol/coolercontrold/pkg/log"
	"github.com/coolercontrol/coolercontrold/pkg/mode"
	"github.com/coolercontrol/coolercontrold/pkg/process"
	"github.com/coolercontrol/coolercontrold/pkg/repository"
	"github.com/coolercontrol/coolercontrold/service"
	"github.com/coolercontrol/coolercontrold/service/alertmgr"
	"github.com/coolercontrol/coolercontrold/service/cpurepo"
	"github.com/coolercontrol/coolercontrold/service/customsensormgr"
	"github.com/coolercontrol/coolercontrold/service/gpurepo"
	"github.com/coolercontrol/coolercontrold/service/hwmonrepo"
	ipcPkg "github.com/coolercontrol/coolercontrold/service/ipc"
	"github.com/coolercontrol/coolercontrold/service/liquidctlrepo"
	"github.com/coolercontrol/coolercontrold/service/modemgr"
	"github.com/coolercontrol/coolercontrold/service/settingsctl"
	svctelemetry "github.com/coolercontrol/coolercontrold/service/telemetry"
)

// defaultTimeout is the per-child startup/shutdown timeout for the
// supervision tree.
const defaultTimeout = 10 * time.Second

const defaultLogo = `
 _____           _           _____            _             _
/  __ \         | |         /  __ \          | |           | |
| /  \/ ___   ___| | ___ _ __| /  \/ ___  _ __ | |_ _ __ ___ | |
| |    / _ \ / _ \ |/ _ \ '__| |    / _ \| '_ \| __| '__/ _ \| |
| \__/\ (_) | (_) | |  __/ |  | \__/\ (_) | | | | |_| | | (_) | |
 \____/\___/ \___/|_|\___|_|   \____/\___/|_| |_|\__|_|  \___/|_|
`

var _ service.Service = (*Daemon)(nil)

// Daemon supervises every actor and drives the 1 Hz control loop (spec §4.9).
type Daemon struct {
	config

	logger *slog.Logger
}

// New constructs a Daemon with sensible defaults: an embedded IPC bus, a
// settings controller and alert manager wired to the configured
// repositories, and no sleep/log-buffer services unless supplied by the
// caller (those have real OS dependencies and are opt-in via options).
func New(opts ...Option) *Daemon {
	cfg := &config{
		name:           "coolercontrold",
		otelSetup:      defaultOtelSetup,
		timeout:        defaultTimeout,
		tickInterval:   defaultTickInterval,
		preloadTimeout: defaultPreloadTimeout,
		lcdTimeout:     defaultLCDTimeout,
		startupDelay:   defaultStartupDelay,
		applyOnBoot:    true,
		ipc:            ipcPkg.New(),
		Modemgr:        modemgr.New(),
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	d := &Daemon{config: *cfg}

	if d.Alertmgr == nil {
		d.Alertmgr = alertmgr.New(d.tickInterval)
	}

	if d.Telemetry == nil {
		d.Telemetry = svctelemetry.New(svctelemetry.WithServiceName(d.name))
	}

	if d.repositories == nil {
		csm := customsensormgr.New(d.resolveChannelValue)
		d.repositories = []repository.Repository{
			hwmonrepo.New(),
			liquidctlrepo.New(),
			cpurepo.New(),
			gpurepo.New(),
		}
		for _, pd := range d.pluginDevices {
			d.repositories = append(d.repositories, pd)
		}
		d.repositories = append(d.repositories, csm) // custom sensors read other repositories' committed statuses; must run last.
	}

	if d.Settingsctl == nil {
		d.Settingsctl = settingsctl.New(d.lookupDevice, d.applySetting)
	}
	if d.Modemgr != nil {
		d.Modemgr.SetApplyFunc(mode.ApplyFunc(d.Settingsctl.ApplyModeEntry))
	}

	return d
}

// Name implements service.Service.
func (d *Daemon) Name() string { return d.name }

// Run starts the daemon: it sets up telemetry, resolves a persistent
// identity, builds the oversight supervision tree for every configured
// actor, and concurrently runs the supervision tree alongside the 1 Hz
// control loop until ctx is cancelled (spec §4.9, §5).
func (d *Daemon) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) (err error) {
	if d.name == "" {
		return ErrNameEmpty
	}
	if len(d.repositories) == 0 {
		return ErrNoRepositories
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %w: %v", d.Name(), ErrPanicked, r)
		}
	}()

	d.otelSetup()
	l := log.GetGlobalLogger()
	d.logger = l

	if d.id == "" {
		idStr, err := id.GetOrCreatePersistentID(d.Name(), "/var/lib/coolercontrold/id")
		if err != nil {
			l.WarnContext(ctx, "failed to get/create persistent id, using ephemeral id", "error", err)
			d.id = id.NewID()
		} else {
			d.id = idStr
		}
	}

	if !d.disableLogo {
		if d.customLogo != "" {
			l.Info(d.customLogo)
		} else {
			l.Info(defaultLogo)
		}
	}

	for _, r := range d.repositories {
		if err := r.InitializeDevices(ctx); err != nil {
			l.WarnContext(ctx, "repository initialization failed", "kind", r.Kind(), "error", err)
		}
	}

	supervisionTree := oversight.New(
		oversight.NeverHalt(),
		oversight.DefaultRestartStrategy(),
		oversight.WithLogger(log.NewOversightLogger(l)),
	)

	if d.ipc == nil && ipcConn == nil {
		return ErrIPCNil
	}

	if d.ipc != nil && ipcConn == nil {
		if err := supervisionTree.Add(
			process.New(d.ipc, nil),
			oversight.Transient(),
			oversight.Timeout(d.timeout),
			d.ipc.Name(),
		); err != nil {
			return fmt.Errorf("%w %s to tree: %w", ErrAddProcess, d.ipc.Name(), err)
		}
	}

	supervise := func(ctx context.Context, c chan error) {
		c <- supervisionTree.Start(ctx)
	}

	spawnProcs := func(ctx context.Context, c chan error) {
		var conn nats.InProcessConnProvider
		switch {
		case ipcConn != nil:
			conn = ipcConn
		case d.ipc != nil:
			conn = d.ipc.GetConnProvider()
		default:
			c <- ErrIPCNil
			return
		}

		configValue := reflect.ValueOf(d.config)
		for i := 0; i < configValue.NumField(); i++ {
			field := configValue.Field(i)
			if !field.IsValid() || !field.CanInterface() {
				continue
			}
			v := field.Interface()
			if v == nil {
				continue
			}
			svc, ok := v.(service.Service)
			if !ok {
				continue
			}
			if err := supervisionTree.Add(
				process.New(svc, conn),
				oversight.Transient(),
				oversight.Timeout(d.timeout),
				svc.Name(),
			); err != nil {
				c <- fmt.Errorf("%w %s to tree: %w", ErrAddProcess, svc.Name(), err)
				return
			}
		}

		for _, svc := range d.extraServices {
			if err := supervisionTree.Add(
				process.New(svc, conn),
				oversight.Transient(),
				oversight.Timeout(d.timeout),
				svc.Name(),
			); err != nil {
				c <- fmt.Errorf("%w extra service %s to tree: %w", ErrAddProcess, svc.Name(), err)
				return
			}
		}
	}

	runLoop := func(ctx context.Context, c chan error) {
		c <- d.loop(ctx)
	}

	l.InfoContext(ctx, "starting daemon", "service", d.name, "repositories", len(d.repositories))
	return nursery.RunConcurrentlyWithContext(ctx, supervise, spawnProcs, runLoop)
}
