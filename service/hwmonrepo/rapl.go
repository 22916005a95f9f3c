// SPDX-License-Identifier: BSD-3-Clause

package hwmonrepo

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/coolercontrol/coolercontrold/pkg/device"
)

// raplCounter tracks a monotonic intel-rapl energy_uj counter and turns
// successive samples into an average wattage, resetting on first
// observation or counter wraparound (spec §4.2).
type raplCounter struct {
	energyPath string
	maxPath    string

	mu      sync.Mutex
	hasPrev bool
	prevUJ  int64
}

// discoverRapl locates the intel-rapl zone matching a CPU hwmon device, if
// present. Only a subset of hwmon devices (the package-level CPU sensor)
// have a corresponding powercap zone, so a miss here is not an error.
func (r *Repository) discoverRapl(devPath, name string) *raplCounter {
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "coretemp") && !strings.Contains(lower, "k10temp") && !strings.Contains(lower, "zenpower") {
		return nil
	}

	entries, err := os.ReadDir(r.cfg.powercapPath)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "intel-rapl:") {
			continue
		}
		zonePath := filepath.Join(r.cfg.powercapPath, e.Name())
		nameData, err := os.ReadFile(filepath.Join(zonePath, "name"))
		if err != nil || strings.TrimSpace(string(nameData)) != "package-0" {
			continue
		}
		energyPath := filepath.Join(zonePath, "energy_uj")
		if _, err := os.Stat(energyPath); err != nil {
			continue
		}
		return &raplCounter{
			energyPath: energyPath,
			maxPath:    filepath.Join(zonePath, "max_energy_range_uj"),
		}
	}
	return nil
}

// sample reads the current counter and returns the average wattage since the
// previous sample, sized by elapsedSeconds.
func (c *raplCounter) sample(ctx context.Context, elapsedSeconds float64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.energyPath)
	if err != nil {
		return 0, err
	}
	cur, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, err
	}

	if !c.hasPrev || cur < c.prevUJ || elapsedSeconds <= 0 {
		c.hasPrev = true
		c.prevUJ = cur
		return 0, nil
	}

	deltaUJ := cur - c.prevUJ
	c.prevUJ = cur

	watts := (float64(deltaUJ) / 1_000_000.0) / elapsedSeconds
	if watts < 0 {
		watts = 0
	}
	return device.Round2(watts), nil
}
