// SPDX-License-Identifier: BSD-3-Clause

package logbuf

import (
	"context"
	"fmt"
	"log/slog"
)

// Handler is a slog.Handler that records every emitted record into a Ring.
// It is meant to be fanned out alongside the console/OTel handlers in
// pkg/log, not to replace them.
type Handler struct {
	ring  *Ring
	attrs []slog.Attr
	group string
}

// NewHandler wraps ring as a slog.Handler.
func NewHandler(ring *Ring) *Handler {
	return &Handler{ring: ring}
}

// Enabled implements slog.Handler; the buffer records every level so the
// health endpoint can surface warnings and errors the console handler
// might filter.
func (h *Handler) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]string, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[h.qualify(a.Key)] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.qualify(a.Key)] = a.Value.String()
		return true
	})

	h.ring.Push(Entry{
		UnixNano: r.Time.UnixNano(),
		Level:    r.Level.String(),
		Message:  r.Message,
		Attrs:    attrs,
	})
	return nil
}

func (h *Handler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return fmt.Sprintf("%s.%s", h.group, key)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &Handler{ring: h.ring, group: h.group}
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return next
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	next := &Handler{ring: h.ring, attrs: h.attrs, group: name}
	if h.group != "" {
		next.group = fmt.Sprintf("%s.%s", h.group, name)
	}
	return next
}
