// SPDX-License-Identifier: BSD-3-Clause

package alertmgr

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/coolercontrol/coolercontrold/pkg/alert"
	"github.com/coolercontrol/coolercontrold/pkg/ipc"
	"github.com/coolercontrol/coolercontrold/pkg/log"
	"github.com/coolercontrol/coolercontrold/service"
)

// Compile-time assertion that Manager implements service.Service.
var _ service.Service = (*Manager)(nil)

// ChannelResolver reads the latest value committed for one device channel.
// available is false when the device or channel has disappeared, which
// drives an alert straight to its Error state (spec §4.7).
type ChannelResolver func(deviceUID, channelName string) (value float64, available bool)

// MaxLogEntries bounds the in-memory transition log kept for the external
// API (spec §4.7, §6).
const MaxLogEntries = 500

// Manager owns every configured Alert and its Evaluator, and serves the
// alert CRUD surface over NATS.
type Manager struct {
	name string

	mu         sync.Mutex
	alerts     map[string]alert.Alert
	evaluators map[string]*alert.Evaluator
	logs       []alert.Log

	tickInterval time.Duration
	logger       *slog.Logger
}

// New constructs a Manager. tickInterval should match the main loop's
// period so warmup windows are measured correctly.
func New(tickInterval time.Duration) *Manager {
	return &Manager{
		name:         "alertmgr",
		alerts:       map[string]alert.Alert{},
		evaluators:   map[string]*alert.Evaluator{},
		tickInterval: tickInterval,
	}
}

// Name implements service.Service.
func (m *Manager) Name() string { return m.name }

// Run implements service.Service, serving alert CRUD over NATS until ctx is
// cancelled. Evaluation itself is driven by service/daemon's control loop
// calling EvaluateAll, not by this loop.
func (m *Manager) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	m.logger = log.GetGlobalLogger().With("service", m.name)

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("connect to ipc bus: %w", err)
	}
	defer nc.Close()

	svc, err := micro.AddService(nc, micro.Config{
		Name:    "alertmgr",
		Version: "1.0.0",
	})
	if err != nil {
		return fmt.Errorf("register alert service: %w", err)
	}
	defer svc.Stop()

	group := svc.AddGroup("alert")
	if err := group.AddEndpoint("create", micro.HandlerFunc(m.handleCreate)); err != nil {
		return err
	}
	if err := group.AddEndpoint("delete", micro.HandlerFunc(m.handleDelete)); err != nil {
		return err
	}
	if err := group.AddEndpoint("list", micro.HandlerFunc(m.handleList)); err != nil {
		return err
	}
	if err := group.AddEndpoint("log", micro.HandlerFunc(m.handleLog)); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "alert manager ready")
	<-ctx.Done()
	return nil
}

// AddAlert registers a new alert and starts its evaluator.
func (m *Manager) AddAlert(ctx context.Context, a alert.Alert) error {
	ev, err := alert.NewEvaluator(ctx, a, m.tickInterval)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts[a.UID] = a
	m.evaluators[a.UID] = ev
	return nil
}

// RemoveAlert deletes an alert and its evaluator.
func (m *Manager) RemoveAlert(uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.alerts[uid]; !ok {
		return ErrAlertNotFound
	}
	delete(m.alerts, uid)
	delete(m.evaluators, uid)
	return nil
}

// EvaluateAll runs every alert's Evaluator against resolve, called once per
// tick by service/daemon's control loop after the new statuses are committed.
func (m *Manager) EvaluateAll(ctx context.Context, now time.Time, resolve ChannelResolver) []alert.Log {
	m.mu.Lock()
	defer m.mu.Unlock()

	var logs []alert.Log
	for uid, ev := range m.evaluators {
		a := m.alerts[uid]
		value, available := resolve(a.ChannelSource.DeviceUID, a.ChannelSource.ChannelName)
		entry, err := ev.Evaluate(ctx, now, value, available)
		if err != nil {
			if m.logger != nil {
				m.logger.ErrorContext(ctx, "alert evaluation failed", "alert", uid, "error", err)
			}
			continue
		}
		if entry != nil {
			logs = append(logs, *entry)
			m.logs = append(m.logs, *entry)
			if len(m.logs) > MaxLogEntries {
				m.logs = m.logs[len(m.logs)-MaxLogEntries:]
			}
		}
	}
	return logs
}

func (m *Manager) handleCreate(req micro.Request) {
	var a alert.Alert
	if err := decodeRequest(req, &a); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "invalid alert payload")
		return
	}
	if err := m.AddAlert(context.Background(), a); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "alert creation failed")
		return
	}
	respondOK(req)
}

func (m *Manager) handleDelete(req micro.Request) {
	uid := string(req.Data())
	if err := m.RemoveAlert(uid); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "alert not found")
		return
	}
	respondOK(req)
}

func (m *Manager) handleList(req micro.Request) {
	m.mu.Lock()
	alerts := make([]alert.Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		alerts = append(alerts, a)
	}
	m.mu.Unlock()
	respondJSON(req, alerts)
}

func (m *Manager) handleLog(req micro.Request) {
	m.mu.Lock()
	logs := append([]alert.Log(nil), m.logs...)
	m.mu.Unlock()
	respondJSON(req, logs)
}
