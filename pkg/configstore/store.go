// SPDX-License-Identifier: BSD-3-Clause

package configstore

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/coolercontrol/coolercontrold/pkg/alert"
	"github.com/coolercontrol/coolercontrold/pkg/customsensor"
	"github.com/coolercontrol/coolercontrold/pkg/file"
	"github.com/coolercontrol/coolercontrold/pkg/mode"
	"github.com/coolercontrol/coolercontrold/pkg/profile"
)

// DefaultPermissions matches the rest of spec §6's config surface
// (.passwd, .tokens): owner read/write only.
const DefaultPermissions = 0o600

// Document is the full persisted state this daemon owns on disk, one
// TOML file per store instance.
type Document struct {
	Profiles      []profile.Profile          `toml:"profile,omitempty"`
	Functions     []profile.Function         `toml:"function,omitempty"`
	Alerts        []alert.Alert              `toml:"alert,omitempty"`
	Modes         []mode.Mode                `toml:"mode,omitempty"`
	CustomSensors []customsensor.CustomSensor `toml:"custom_sensor,omitempty"`
}

// Store persists one Document to a single TOML file on disk.
type Store struct {
	path string
}

// New returns a Store backed by path. The file is created lazily on first
// Save; Load on a missing file returns an empty Document, not an error.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads and decodes the document. A missing file yields a zero
// Document and a nil error.
func (s *Store) Load() (Document, error) {
	var doc Document

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("read %s: %w", s.path, err)
	}

	if _, err := toml.Decode(string(data), &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc, nil
}

// Save atomically overwrites the document on disk.
func (s *Store) Save(doc Document) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	return file.AtomicReplaceFile(s.path, buf.Bytes(), DefaultPermissions)
}
