// SPDX-License-Identifier: BSD-3-Clause

package customsensor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateMixRejectsFilePath(t *testing.T) {
	c := CustomSensor{Kind: KindMix, FilePath: "/tmp/x", Sources: []Source{{}}}
	if err := c.Validate(); err != ErrMixCannotHaveFilePath {
		t.Fatalf("got %v, want ErrMixCannotHaveFilePath", err)
	}
}

func TestValidateFileRequiresPath(t *testing.T) {
	c := CustomSensor{Kind: KindFile}
	if err := c.Validate(); err != ErrFileRequiresPath {
		t.Fatalf("got %v, want ErrFileRequiresPath", err)
	}
}

func TestReduceDelta(t *testing.T) {
	c := CustomSensor{Kind: KindMix, MixFunction: MixDelta, Sources: []Source{{}, {}, {}}}
	got, err := c.Reduce([]float64{40, 55, 35})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if got != 20 {
		t.Fatalf("got %v, want 20", got)
	}
}

func TestReduceWeightedAvg(t *testing.T) {
	c := CustomSensor{
		Kind:        KindMix,
		MixFunction: MixWeightedAvg,
		Sources:     []Source{{Weight: 1}, {Weight: 3}},
	}
	got, err := c.Reduce([]float64{40, 60})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	want := (40*1 + 60*3) / 4.0
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReduceWeightedAvgAllZeroWeightsYieldsZero(t *testing.T) {
	c := CustomSensor{
		Kind:        KindMix,
		MixFunction: MixWeightedAvg,
		Sources:     []Source{{Weight: 0}, {Weight: 0}},
	}
	got, err := c.Reduce([]float64{40, 60})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestValidateWeightedAvgAllowsZeroWeight(t *testing.T) {
	c := CustomSensor{
		Kind:        KindMix,
		MixFunction: MixWeightedAvg,
		Sources:     []Source{{Weight: 0}, {Weight: 254}},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateWeightedAvgRejectsNegativeWeight(t *testing.T) {
	c := CustomSensor{
		Kind:        KindMix,
		MixFunction: MixWeightedAvg,
		Sources:     []Source{{Weight: -1}},
	}
	if err := c.Validate(); err != ErrWeightOutOfRange {
		t.Fatalf("got %v, want ErrWeightOutOfRange", err)
	}
}

func TestValidateWeightedAvgRejectsWeightAboveMax(t *testing.T) {
	c := CustomSensor{
		Kind:        KindMix,
		MixFunction: MixWeightedAvg,
		Sources:     []Source{{Weight: 255}},
	}
	if err := c.Validate(); err != ErrWeightOutOfRange {
		t.Fatalf("got %v, want ErrWeightOutOfRange", err)
	}
}

func TestReadFileReading(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sensor")
	if err := os.WriteFile(path, []byte("42.5\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFileReading(path)
	if err != nil {
		t.Fatalf("ReadFileReading: %v", err)
	}
	if got != 42.5 {
		t.Fatalf("got %v, want 42.5", got)
	}
}

func TestReadFileReadingRejectsMultipleLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sensor")
	if err := os.WriteFile(path, []byte("42.5\n10\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ReadFileReading(path); err == nil {
		t.Fatalf("expected error for multi-line file")
	}
}
