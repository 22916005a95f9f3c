// SPDX-License-Identifier: BSD-3-Clause

package logbufsrv

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func record(level slog.Level, msg string) slog.Record {
	return slog.NewRecord(time.Now(), level, msg, 0)
}

func TestHealthReportsCounters(t *testing.T) {
	s := New("1.2.3", 10)
	h := s.Handler()
	ctx := context.Background()
	if err := h.Handle(ctx, record(slog.LevelWarn, "careful")); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if err := h.Handle(ctx, record(slog.LevelError, "broken")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	status := s.health()
	if status.Version != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", status.Version)
	}
	if status.Warnings != 1 || status.Errors != 1 {
		t.Errorf("counters = (%d, %d), want (1, 1)", status.Warnings, status.Errors)
	}
	if status.Status != "ok" {
		t.Errorf("status = %q, want ok", status.Status)
	}
}
