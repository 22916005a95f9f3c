// SPDX-License-Identifier: BSD-3-Clause

package modemgr

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/coolercontrol/coolercontrold/pkg/ipc"
	"github.com/coolercontrol/coolercontrold/pkg/log"
	"github.com/coolercontrol/coolercontrold/pkg/mode"
	"github.com/coolercontrol/coolercontrold/service"
)

// Compile-time assertion that Manager implements service.Service.
var _ service.Service = (*Manager)(nil)

// Manager owns every saved Mode and its Activator, and serves the mode
// CRUD and activation surface over NATS.
type Manager struct {
	name string

	mu         sync.Mutex
	modes      map[string]*mode.Mode
	activators map[string]*mode.Activator
	active     string
	hasActive  bool
	applyFunc  mode.ApplyFunc

	logger *slog.Logger
}

// New constructs an empty Manager.
func New() *Manager {
	return &Manager{
		name:       "modemgr",
		modes:      map[string]*mode.Mode{},
		activators: map[string]*mode.Activator{},
	}
}

// SetApplyFunc wires the dispatcher used by the "activate" NATS endpoint.
// The daemon calls this once at startup with the settings controller's
// ApplyModeEntry.
func (m *Manager) SetApplyFunc(apply mode.ApplyFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyFunc = apply
}

// ActiveModeUID returns the UID of the most recently activated Mode, if
// any has been activated since startup. Consulted by the daemon on resume
// from suspend to reapply the active mode (spec §4.9 step 2).
func (m *Manager) ActiveModeUID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.hasActive
}

// Name implements service.Service.
func (m *Manager) Name() string { return m.name }

// Run implements service.Service, serving mode CRUD and activation over
// NATS until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	m.logger = log.GetGlobalLogger().With("service", m.name)

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("connect to ipc bus: %w", err)
	}
	defer nc.Close()

	svc, err := micro.AddService(nc, micro.Config{
		Name:    "modemgr",
		Version: "1.0.0",
	})
	if err != nil {
		return fmt.Errorf("register mode service: %w", err)
	}
	defer svc.Stop()

	group := svc.AddGroup("mode")
	if err := group.AddEndpoint("create", micro.HandlerFunc(m.handleCreate)); err != nil {
		return err
	}
	if err := group.AddEndpoint("delete", micro.HandlerFunc(m.handleDelete)); err != nil {
		return err
	}
	if err := group.AddEndpoint("list", micro.HandlerFunc(m.handleList)); err != nil {
		return err
	}
	if err := group.AddEndpoint("activate", micro.HandlerFunc(m.handleActivate)); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "mode manager ready")
	<-ctx.Done()
	return nil
}

// Save registers m as a saved Mode, building its Activator. A Mode with the
// same UID as an existing one replaces it, dropping the old Activator.
func (m *Manager) Save(ctx context.Context, md *mode.Mode) error {
	a, err := mode.NewActivator(ctx, md)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[md.UID] = md
	m.activators[md.UID] = a
	return nil
}

// Delete removes a saved Mode.
func (m *Manager) Delete(uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.modes[uid]; !ok {
		return ErrModeNotFound
	}
	delete(m.modes, uid)
	delete(m.activators, uid)
	return nil
}

// List returns every saved Mode.
func (m *Manager) List() []*mode.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	modes := make([]*mode.Mode, 0, len(m.modes))
	for _, md := range m.modes {
		modes = append(modes, md)
	}
	return modes
}

// RemoveProfileReferences drops references to profileUID from every saved
// Mode, observing profile deletions per spec §4.8.
func (m *Manager) RemoveProfileReferences(profileUID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, md := range m.modes {
		md.RemoveProfileReferences(profileUID)
	}
}

// ActivateMode applies a saved Mode's captured settings through apply. It
// is called by the "activate" NATS endpoint and by service/daemon when it
// reapplies the active mode on resume from suspend.
func (m *Manager) ActivateMode(ctx context.Context, uid string, apply mode.ApplyFunc) ([]mode.ApplyResult, error) {
	m.mu.Lock()
	a, ok := m.activators[uid]
	m.mu.Unlock()
	if !ok {
		return nil, ErrModeNotFound
	}
	results, err := a.Activate(ctx, apply)
	if err != nil {
		return results, err
	}
	m.mu.Lock()
	m.active, m.hasActive = uid, true
	m.mu.Unlock()
	return results, nil
}

func (m *Manager) handleCreate(req micro.Request) {
	var md mode.Mode
	if err := decodeRequest(req, &md); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "invalid mode payload")
		return
	}
	if err := m.Save(context.Background(), &md); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "mode save failed")
		return
	}
	respondOK(req)
}

func (m *Manager) handleDelete(req micro.Request) {
	uid := string(req.Data())
	if err := m.Delete(uid); err != nil {
		ipc.RespondWithError(context.Background(), req, err, "mode not found")
		return
	}
	respondOK(req)
}

func (m *Manager) handleList(req micro.Request) {
	respondJSON(req, m.List())
}

func (m *Manager) handleActivate(req micro.Request) {
	uid := string(req.Data())
	m.mu.Lock()
	apply := m.applyFunc
	m.mu.Unlock()
	if apply == nil {
		ipc.RespondWithError(context.Background(), req, ErrModeNotFound, "mode activation unavailable")
		return
	}
	results, err := m.ActivateMode(context.Background(), uid, apply)
	if err != nil {
		ipc.RespondWithError(context.Background(), req, err, "mode activation failed")
		return
	}
	respondJSON(req, results)
}
