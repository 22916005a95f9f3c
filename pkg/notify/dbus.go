// SPDX-License-Identifier: BSD-3-Clause

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest = "org.freedesktop.Notifications"
	notifyPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIface = "org.freedesktop.Notifications.Notify"
)

// urgency mirrors org.freedesktop.Notifications' byte hint values.
const (
	urgencyLow      byte = 0
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

// Category selects the icon and urgency a DBusDispatcher attaches to a
// Notification (spec §6): alert-triggered, alert-resolved, alert-error,
// info, shutdown.
type Category string

const (
	CategoryAlertTriggered Category = "alert-triggered"
	CategoryAlertResolved  Category = "alert-resolved"
	CategoryAlertError     Category = "alert-error"
	CategoryInfo           Category = "info"
	CategoryShutdown       Category = "shutdown"
)

var categoryIcons = map[Category]string{
	CategoryAlertTriggered: "dialog-warning",
	CategoryAlertResolved:  "dialog-information",
	CategoryAlertError:     "dialog-error",
	CategoryInfo:           "dialog-information",
	CategoryShutdown:       "system-shutdown",
}

// CategorizedNotification extends Notification with the category that
// selects its icon and urgency. The plain Dispatcher interface only deals
// in Severity; DBusDispatcher accepts the richer form through NotifyCategory
// and falls back to mapping Severity for plain Notify calls.
type CategorizedNotification struct {
	Notification
	Category Category
	Audio    bool
}

// DBusDispatcher delivers Notifications over the session bus via
// org.freedesktop.Notifications.Notify (spec §6). It never touches any
// other desktop integration; audio is requested through the "sound-name"
// hint and left to the notification server to honor.
type DBusDispatcher struct {
	conn    *dbus.Conn
	appName string
}

// NewDBusDispatcher connects to the session bus. Callers should fall back
// to NoopDispatcher if this returns an error (e.g. headless/no session
// bus), never treat it as fatal.
func NewDBusDispatcher(appName string) (*DBusDispatcher, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &DBusDispatcher{conn: conn, appName: appName}, nil
}

// Close releases the session bus connection.
func (d *DBusDispatcher) Close() error {
	return d.conn.Close()
}

// Notify implements Dispatcher, mapping Severity to a Category.
func (d *DBusDispatcher) Notify(ctx context.Context, n Notification) error {
	cat := CategoryInfo
	switch n.Severity {
	case SeverityWarning:
		cat = CategoryAlertTriggered
	case SeverityError:
		cat = CategoryAlertError
	}
	return d.NotifyCategory(ctx, CategorizedNotification{Notification: n, Category: cat})
}

// NotifyCategory sends a Notification with an explicit Category,
// selecting the icon and urgency hints and, if Audio is set, requesting
// the default system sound (spec §6).
func (d *DBusDispatcher) NotifyCategory(ctx context.Context, n CategorizedNotification) error {
	urgency := urgencyNormal
	switch n.Category {
	case CategoryAlertError, CategoryShutdown:
		urgency = urgencyCritical
	case CategoryInfo, CategoryAlertResolved:
		urgency = urgencyLow
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}
	if n.Audio {
		hints["sound-name"] = dbus.MakeVariant("message-new-instant")
	}

	obj := d.conn.Object(notifyDest, notifyPath)
	call := obj.CallWithContext(ctx, notifyIface, 0,
		d.appName,
		uint32(0),
		categoryIcons[n.Category],
		n.Title,
		n.Body,
		[]string{},
		hints,
		int32(5*time.Second/time.Millisecond),
	)
	return call.Err
}
