// SPDX-License-Identifier: BSD-3-Clause

package notify

import "context"

// Severity classifies a Notification for the receiving desktop integration.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is one event worth surfacing to the user outside the API.
type Notification struct {
	Title    string
	Body     string
	Severity Severity
}

// Dispatcher delivers Notifications to whatever desktop integration is
// wired in. The daemon core only ever holds a Dispatcher; it never talks
// to D-Bus or any other transport directly.
type Dispatcher interface {
	Notify(ctx context.Context, n Notification) error
}

// NoopDispatcher discards every notification. cmd/coolercontrold wires it
// when no D-Bus session is available, and service/daemon falls back to it
// when no Dispatcher was supplied.
type NoopDispatcher struct{}

// Notify implements Dispatcher.
func (NoopDispatcher) Notify(context.Context, Notification) error { return nil }
