// SPDX-License-Identifier: BSD-3-Clause

package mode

import (
	"sort"

	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// Mode is a named, full snapshot of applied settings across every device,
// keyed by device UID then channel name (spec §3).
type Mode struct {
	UID      string
	Name     string
	Settings map[string]map[string]repository.Setting
}

// New constructs an empty Mode.
func New(uid, name string) (*Mode, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Mode{
		UID:      uid,
		Name:     name,
		Settings: make(map[string]map[string]repository.Setting),
	}, nil
}

// Capture records the currently scheduled setting for one channel.
func (m *Mode) Capture(deviceUID, channelName string, s repository.Setting) {
	if m.Settings[deviceUID] == nil {
		m.Settings[deviceUID] = make(map[string]repository.Setting)
	}
	m.Settings[deviceUID][channelName] = s
}

// IsEmpty reports whether the Mode captures no settings at all. An empty
// Mode is still retained and activates as a no-op (spec §4.8).
func (m *Mode) IsEmpty() bool {
	for _, channels := range m.Settings {
		if len(channels) > 0 {
			return false
		}
	}
	return true
}

// RemoveProfileReferences drops every captured setting that schedules the
// given profile UID, observing profile deletions per spec §4.8. A Mode
// that becomes empty as a result is retained, not deleted.
func (m *Mode) RemoveProfileReferences(profileUID string) {
	for deviceUID, channels := range m.Settings {
		for channelName, s := range channels {
			if s.ProfileUID != nil && *s.ProfileUID == profileUID {
				delete(channels, channelName)
			}
		}
		if len(channels) == 0 {
			delete(m.Settings, deviceUID)
		}
	}
}

// Entry is one flattened (device, channel, setting) triple, used by
// activation to iterate a Mode's snapshot in a stable fashion.
type Entry struct {
	DeviceUID   string
	ChannelName string
	Setting     repository.Setting
}

// Entries flattens the Mode's nested map into a slice for iteration.
func (m *Mode) Entries() []Entry {
	entries := make([]Entry, 0)
	for deviceUID, channels := range m.Settings {
		for channelName, s := range channels {
			entries = append(entries, Entry{DeviceUID: deviceUID, ChannelName: channelName, Setting: s})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DeviceUID != entries[j].DeviceUID {
			return entries[i].DeviceUID < entries[j].DeviceUID
		}
		return entries[i].ChannelName < entries[j].ChannelName
	})
	return entries
}
