// SPDX-License-Identifier: BSD-3-Clause

package sleepwatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
	"github.com/nats-io/nats.go"

	"github.com/coolercontrol/coolercontrold/pkg/log"
	pkgsleep "github.com/coolercontrol/coolercontrold/pkg/sleepwatch"
	"github.com/coolercontrol/coolercontrold/service"
)

// Compile-time assertion that Listener implements service.Service.
var _ service.Service = (*Listener)(nil)

const (
	loginManagerIface = "org.freedesktop.login1.Manager"
	loginManagerPath  = "/org/freedesktop/login1"
	prepareForSleep   = loginManagerIface + ".PrepareForSleep"
)

// Listener owns the system-bus subscription and the pure suspend/resume
// state the main loop polls (spec §4.9 steps 1-2). It implements
// service.Service's Name/Run and also exposes SuspendPending/ConsumeResume
// directly so service/daemon can drive it without importing this package.
type Listener struct {
	name   string
	state  *pkgsleep.State
	logger *slog.Logger

	// connectSystemBus is overridable in tests so the state machine's
	// wiring can be exercised without a real D-Bus daemon.
	connectSystemBus func() (*dbus.Conn, error)
}

// New constructs a Listener. It does not connect to D-Bus until Run is
// called.
func New() *Listener {
	return &Listener{
		name:             "sleepwatch",
		state:            pkgsleep.New(),
		connectSystemBus: dbus.ConnectSystemBus,
	}
}

// Name implements service.Service.
func (l *Listener) Name() string { return l.name }

// SuspendPending implements the resumer interface service/daemon/tick.go
// expects (spec §4.9 step 1).
func (l *Listener) SuspendPending() bool { return l.state.SuspendPending() }

// ConsumeResume implements the resumer interface service/daemon/tick.go
// expects (spec §4.9 step 2).
func (l *Listener) ConsumeResume() bool { return l.state.ConsumeResume() }

// Run subscribes to PrepareForSleep and updates state until ctx is
// cancelled or the bus connection drops. A failure to connect is returned
// so the supervision tree can retry; the daemon still runs without it, it
// simply never skips a tick for suspend (spec §7).
func (l *Listener) Run(ctx context.Context, _ nats.InProcessConnProvider) error {
	l.logger = log.GetGlobalLogger().With("service", l.name)

	conn, err := l.connectSystemBus()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectSystemBus, err)
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(loginManagerIface),
		dbus.WithMatchMember("PrepareForSleep"),
		dbus.WithMatchObjectPath(loginManagerPath),
	); err != nil {
		return fmt.Errorf("subscribe to PrepareForSleep: %w", err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	l.logger.InfoContext(ctx, "sleep listener ready")
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			l.handle(ctx, sig)
		}
	}
}

func (l *Listener) handle(ctx context.Context, sig *dbus.Signal) {
	if sig.Name != prepareForSleep || len(sig.Body) != 1 {
		return
	}
	sleeping, ok := sig.Body[0].(bool)
	if !ok {
		return
	}
	l.state.HandleSignal(sleeping)
	if l.logger != nil {
		l.logger.InfoContext(ctx, "prepare for sleep", "sleeping", sleeping)
	}
}
