// SPDX-License-Identifier: BSD-3-Clause

package logbufsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"connectrpc.com/grpchealth"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/coolercontrol/coolercontrold/pkg/log"
	"github.com/coolercontrol/coolercontrold/pkg/logbuf"
	"github.com/coolercontrol/coolercontrold/service"
)

// Compile-time assertion that Server implements service.Service.
var _ service.Service = (*Server)(nil)

// HealthStatus mirrors spec §6's "GET /health" response shape.
type HealthStatus struct {
	Status    string  `json:"status"`
	UptimeSec float64 `json:"uptime_sec"`
	Version   string  `json:"version"`
	PID       int     `json:"pid"`
	MemoryMB  float64 `json:"memory_mb"`
	Warnings  uint64  `json:"warnings"`
	Errors    uint64  `json:"errors"`
}

// Server owns the in-memory log ring and answers system.health/system.log
// over NATS (spec §6). Construct it before the daemon's logger is built and
// attach its Handler with pkg/log.SetExtraHandler so every record recorded
// from process start onward is visible to /health's warning/error counts.
type Server struct {
	name    string
	version string
	ring    *logbuf.Ring
	start   time.Time

	mu      sync.Mutex
	running bool
	logger  *slog.Logger
}

// New constructs a Server with the given log capacity (logbuf.DefaultCapacity
// if capacity <= 0).
func New(version string, capacity int) *Server {
	if capacity <= 0 {
		capacity = logbuf.DefaultCapacity
	}
	ring, err := logbuf.NewRing(capacity)
	if err != nil {
		// capacity is guaranteed positive above; NewRing cannot fail here.
		panic(err)
	}
	return &Server{
		name:    "logbufsrv",
		version: version,
		ring:    ring,
		start:   time.Now(),
	}
}

// Handler returns the slog.Handler that should be registered with
// pkg/log.SetExtraHandler before any other service starts logging.
func (s *Server) Handler() slog.Handler { return logbuf.NewHandler(s.ring) }

// Name implements service.Service.
func (s *Server) Name() string { return s.name }

// Run implements service.Service, serving system.health and system.log
// over NATS until ctx is cancelled.
func (s *Server) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger = log.GetGlobalLogger().With("service", s.name)

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("connect to ipc bus: %w", err)
	}
	defer nc.Close()

	svc, err := micro.AddService(nc, micro.Config{
		Name:    "logbufsrv",
		Version: "1.0.0",
	})
	if err != nil {
		return fmt.Errorf("register logbuf service: %w", err)
	}
	defer svc.Stop()

	group := svc.AddGroup("system")
	if err := group.AddEndpoint("health", micro.HandlerFunc(s.handleHealth)); err != nil {
		return err
	}
	if err := group.AddEndpoint("log", micro.HandlerFunc(s.handleLog)); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "log buffer ready", "capacity", s.ring.Len())
	<-ctx.Done()
	return nil
}

func (s *Server) health() HealthStatus {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	warnings, errs := s.ring.Counts()
	return HealthStatus{
		Status:    "ok",
		UptimeSec: time.Since(s.start).Seconds(),
		Version:   s.version,
		PID:       os.Getpid(),
		MemoryMB:  float64(mem.Alloc) / (1024 * 1024),
		Warnings:  warnings,
		Errors:    errs,
	}
}

func (s *Server) handleHealth(req micro.Request) {
	data, err := json.Marshal(s.health())
	if err != nil {
		_ = req.Error("500", err.Error(), nil)
		return
	}
	_ = req.Respond(data)
}

// HTTPHandler serves spec §6's "GET /health" shape over plain HTTP and, on
// the same mux, the gRPC-style Health-check protocol via grpchealth — the
// one piece of the Connect/gRPC stack this daemon has no schema to
// generate from, so it is wired directly rather than faked (SPEC_FULL §6).
// Callers that run an HTTP listener (cmd/coolercontrold) mount this; the
// daemon itself has no opinion on transport and never calls it.
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(grpchealth.NewHandler(grpchealth.NewStaticChecker(s.name)))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(s.health())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
	return mux
}

// logRequest optionally bounds the number of returned entries.
type logRequest struct {
	Limit int `json:"limit"`
}

func (s *Server) handleLog(req micro.Request) {
	var lr logRequest
	if len(req.Data()) > 0 {
		_ = json.Unmarshal(req.Data(), &lr)
	}
	entries := s.ring.Slice(lr.Limit)
	data, err := json.Marshal(entries)
	if err != nil {
		_ = req.Error("500", err.Error(), nil)
		return
	}
	_ = req.Respond(data)
}
