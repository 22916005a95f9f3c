// SPDX-License-Identifier: BSD-3-Clause

package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/coolercontrol/coolercontrold/pkg/alert"
	"github.com/coolercontrol/coolercontrold/pkg/notify"
)

// resumer is implemented by the sleep/resume listener. The daemon only
// depends on this narrow interface, never on service/sleepwatch directly,
// so the default build works without any D-Bus session available.
type resumer interface {
	// SuspendPending reports whether a suspend signal arrived and the
	// corresponding resume has not yet been observed (spec §4.9 step 1).
	SuspendPending() bool
	// ConsumeResume reports, exactly once per resume event, that the
	// system just woke up (spec §4.9 step 2). Subsequent calls return
	// false until the next suspend/resume cycle.
	ConsumeResume() bool
}

// loop runs the 1 Hz control loop until ctx is cancelled (spec §4.9).
func (d *Daemon) loop(ctx context.Context) error {
	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	var eventConn *nats.Conn
	if d.ipc != nil {
		if conn, err := nats.Connect("", nats.InProcessServer(d.ipc.GetConnProvider())); err == nil {
			eventConn = conn
			defer eventConn.Close()
		} else {
			d.logger.WarnContext(ctx, "daemon could not connect to ipc bus for event publishing", "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return d.shutdown(context.Background())
		case <-ticker.C:
			d.tick(ctx, eventConn)
		}
	}
}

func (d *Daemon) resumeSource() (resumer, bool) {
	if d.Sleepwatch == nil {
		return nil, false
	}
	r, ok := d.Sleepwatch.(resumer)
	return r, ok
}

func (d *Daemon) tick(ctx context.Context, eventConn *nats.Conn) {
	if r, ok := d.resumeSource(); ok {
		if r.SuspendPending() {
			return // step 1
		}
		if r.ConsumeResume() {
			d.handleResume(ctx)
		}
	}

	d.preloadAll(ctx)  // step 3
	d.updateAll(ctx)   // step 4
	d.Settingsctl.TickLCD(ctx) // step 5
	d.Settingsctl.Tick(ctx)    // step 6
	d.evaluateAlerts(ctx, eventConn) // step 7
}

// handleResume implements spec §4.9 step 2: wait out the startup delay,
// optionally reinitialize every repository and reapply the active mode,
// then clear every device's status ring so no pre-suspend/post-resume
// discontinuity is graphed.
func (d *Daemon) handleResume(ctx context.Context) {
	delay := d.startupDelay
	if delay < time.Second {
		delay = time.Second
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return
	}

	if d.applyOnBoot {
		for _, r := range d.repositories {
			if err := r.InitializeDevices(ctx); err != nil {
				d.logger.WarnContext(ctx, "resume: repository reinitialization failed", "kind", r.Kind(), "error", err)
			}
		}
		if d.Modemgr != nil {
			if uid, ok := d.Modemgr.ActiveModeUID(); ok {
				if _, err := d.Modemgr.ActivateMode(ctx, uid, d.Settingsctl.ApplyModeEntry); err != nil {
					d.logger.WarnContext(ctx, "resume: reapplying active mode failed", "mode", uid, "error", err)
				}
			}
		}
	}

	for _, r := range d.repositories {
		for _, dev := range r.Devices() {
			dev.Reset()
		}
	}
	d.logger.InfoContext(ctx, "resumed from suspend")
}

// preloadAll fans preload_statuses() out across every repository
// concurrently, bounded by a soft timeout: whichever finish first win,
// and the tick proceeds with whatever completed (spec §4.9 step 3, §5).
func (d *Daemon) preloadAll(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, d.preloadTimeout)
	defer cancel()

	done := make(chan struct{}, len(d.repositories))
	for _, r := range d.repositories {
		go func() {
			if err := r.PreloadStatuses(pctx); err != nil && !errorsIsContextErr(err) {
				d.logger.WarnContext(ctx, "preload failed", "kind", r.Kind(), "error", err)
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < len(d.repositories); i++ {
		select {
		case <-done:
		case <-pctx.Done():
			return
		}
	}
}

func errorsIsContextErr(err error) bool {
	return err == context.Canceled || err == context.DeadlineExceeded
}

// updateAll commits each repository's preloaded snapshot sequentially.
// Custom sensors run last since they read other repositories' just-
// committed statuses (spec §4.1, §4.9 step 4).
func (d *Daemon) updateAll(ctx context.Context) {
	for _, r := range d.repositories {
		if err := r.UpdateStatuses(ctx); err != nil {
			d.logger.WarnContext(ctx, "status update failed", "kind", r.Kind(), "error", err)
		}
	}
}

func (d *Daemon) evaluateAlerts(ctx context.Context, eventConn *nats.Conn) {
	logs := d.Alertmgr.EvaluateAll(ctx, time.Now(), d.resolveChannelValue)
	for _, entry := range logs {
		d.publishAlertLog(ctx, eventConn, entry)
		d.notifyAlertLog(ctx, entry)
	}
}

func (d *Daemon) publishAlertLog(ctx context.Context, eventConn *nats.Conn, entry alert.Log) {
	if eventConn == nil {
		return
	}
	subject := fmt.Sprintf("alertmgr.event.%s", entry.AlertUID)
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := eventConn.Publish(subject, data); err != nil {
		d.logger.WarnContext(ctx, "alert event publish failed", "alert", entry.AlertUID, "error", err)
	}
}

func (d *Daemon) notifyAlertLog(ctx context.Context, entry alert.Log) {
	if d.notifier == nil {
		d.notifier = notify.NoopDispatcher{}
	}
	severity := notify.SeverityWarning
	title := "Alert triggered"
	switch entry.NewState {
	case "Inactive":
		severity = notify.SeverityInfo
		title = "Alert resolved"
	case "Error":
		severity = notify.SeverityError
		title = "Alert error"
	}
	_ = d.notifier.Notify(ctx, notify.Notification{
		Title:    title,
		Body:     fmt.Sprintf("%s: %.2f", entry.AlertUID, entry.Value),
		Severity: severity,
	})
}

// shutdown runs the cancellation sequence (spec §5): a shutdown
// notification is sent through the Dispatcher, then every repository
// restores its channels to their default state and releases resources.
func (d *Daemon) shutdown(ctx context.Context) error {
	d.logger.InfoContext(ctx, "shutting down")
	if d.notifier == nil {
		d.notifier = notify.NoopDispatcher{}
	}
	_ = d.notifier.Notify(ctx, notify.Notification{
		Title:    "Shutting down",
		Body:     d.name + " is shutting down",
		Severity: notify.SeverityInfo,
	})
	for _, r := range d.repositories {
		if err := r.Shutdown(ctx); err != nil {
			d.logger.WarnContext(ctx, "repository shutdown failed", "kind", r.Kind(), "error", err)
		}
	}
	return nil
}
