// SPDX-License-Identifier: BSD-3-Clause

// Package notify declares the desktop-notification dispatch interface
// named as a collaborator in spec §1 and provides one concrete
// implementation, DBusDispatcher, delivering over the session bus via
// org.freedesktop.Notifications.Notify (spec §6). service/daemon holds only
// the Dispatcher interface, never a transport, and sends alert-transition
// and shutdown notifications through it, so a headless deployment can wire
// NoopDispatcher instead without any other code changing.
package notify
