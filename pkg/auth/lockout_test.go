// SPDX-License-Identifier: BSD-3-Clause

package auth

import (
	"testing"
	"time"
)

func TestLockoutAllowsUnderThreshold(t *testing.T) {
	l := NewLockoutTracker()
	now := time.Now()
	for i := 0; i < LockoutThreshold-1; i++ {
		l.RecordFailure("user", now)
	}
	if err := l.Allow("user", now); err != nil {
		t.Fatalf("got %v, want nil under threshold", err)
	}
}

func TestLockoutEngagesAtThreshold(t *testing.T) {
	l := NewLockoutTracker()
	now := time.Now()
	for i := 0; i < LockoutThreshold; i++ {
		l.RecordFailure("user", now)
	}
	if err := l.Allow("user", now); err != ErrLockedOut {
		t.Fatalf("got %v, want ErrLockedOut", err)
	}
}

func TestLockoutExpiresAfterBase(t *testing.T) {
	l := NewLockoutTracker()
	now := time.Now()
	for i := 0; i < LockoutThreshold; i++ {
		l.RecordFailure("user", now)
	}
	later := now.Add(LockoutBase + time.Millisecond)
	if err := l.Allow("user", later); err != nil {
		t.Fatalf("got %v, want nil once the lockout window elapses", err)
	}
}

func TestLockoutBackoffCapsAtFifteenMinutes(t *testing.T) {
	l := NewLockoutTracker()
	now := time.Now()
	for i := 0; i < LockoutThreshold+20; i++ {
		l.RecordFailure("user", now)
	}
	st := l.state["user"]
	if st.lockedFor > LockoutMax {
		t.Fatalf("lockout duration %v exceeds cap %v", st.lockedFor, LockoutMax)
	}
}

func TestRecordSuccessClearsLockout(t *testing.T) {
	l := NewLockoutTracker()
	now := time.Now()
	for i := 0; i < LockoutThreshold; i++ {
		l.RecordFailure("user", now)
	}
	l.RecordSuccess("user")
	if err := l.Allow("user", now); err != nil {
		t.Fatalf("got %v, want nil after a recorded success", err)
	}
}
