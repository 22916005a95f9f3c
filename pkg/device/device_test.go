// SPDX-License-Identifier: BSD-3-Clause

package device

import "testing"

func TestStableUIDStableAcrossRestart(t *testing.T) {
	d1, err := New("nzxt-kraken", KindLiquidctl, 0, "serial-123", DeviceInfo{}, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d2, err := New("nzxt-kraken", KindLiquidctl, 0, "serial-123", DeviceInfo{}, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d1.StableUID != d2.StableUID {
		t.Fatalf("stable UID differs across construction: %s != %s", d1.StableUID, d2.StableUID)
	}
}

func TestStableUIDFallsBackToNameAndIndex(t *testing.T) {
	d1, _ := New("nct6798", KindHwmon, 1, "", DeviceInfo{}, 10)
	d2, _ := New("nct6798", KindHwmon, 2, "", DeviceInfo{}, 10)
	if d1.StableUID == d2.StableUID {
		t.Fatal("devices differing only in type index must not share a stable UID")
	}
}

func TestNewRejectsEmptyName(t *testing.T) {
	if _, err := New("", KindHwmon, 0, "", DeviceInfo{}, 10); err == nil {
		t.Fatal("New with empty name should fail")
	}
}

func TestNewRejectsInvalidKind(t *testing.T) {
	if _, err := New("x", Kind("bogus"), 0, "", DeviceInfo{}, 10); err == nil {
		t.Fatal("New with invalid kind should fail")
	}
}

func TestChannelNotFound(t *testing.T) {
	d, _ := New("x", KindHwmon, 0, "", DeviceInfo{Channels: map[string]ChannelInfo{}}, 10)
	if _, err := d.Channel("pwm1"); err == nil {
		t.Fatal("Channel() for missing channel should fail")
	}
}

func TestPushStatusAndLatest(t *testing.T) {
	d, _ := New("x", KindHwmon, 0, "", DeviceInfo{}, 10)
	d.PushStatus(Status{TimestampUnix: 1})
	d.PushStatus(Status{TimestampUnix: 2})
	latest, ok := d.Latest()
	if !ok || latest.TimestampUnix != 2 {
		t.Fatalf("Latest() = %+v, %v; want timestamp 2, true", latest, ok)
	}
}
