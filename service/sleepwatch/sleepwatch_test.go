// SPDX-License-Identifier: BSD-3-Clause

package sleepwatch

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestRunReturnsErrConnectSystemBusOnFailure(t *testing.T) {
	l := New()
	l.connectSystemBus = func() (*dbus.Conn, error) {
		return nil, errors.New("no bus")
	}

	err := l.Run(context.Background(), nil)
	if !errors.Is(err, ErrConnectSystemBus) {
		t.Fatalf("err = %v, want ErrConnectSystemBus", err)
	}
}

func TestHandleUpdatesState(t *testing.T) {
	l := New()
	ctx := context.Background()

	l.handle(ctx, &dbus.Signal{Name: prepareForSleep, Body: []interface{}{true}})
	if !l.SuspendPending() {
		t.Fatal("expected suspend pending after sleeping=true signal")
	}

	l.handle(ctx, &dbus.Signal{Name: prepareForSleep, Body: []interface{}{false}})
	if l.SuspendPending() {
		t.Fatal("expected suspend cleared after sleeping=false signal")
	}
	if !l.ConsumeResume() {
		t.Fatal("expected a resume to be recorded")
	}
}

func TestHandleIgnoresOtherSignals(t *testing.T) {
	l := New()
	l.handle(context.Background(), &dbus.Signal{Name: "org.freedesktop.login1.Manager.SessionNew", Body: []interface{}{"1"}})
	if l.SuspendPending() {
		t.Fatal("unrelated signal should not change state")
	}
}
