// SPDX-License-Identifier: BSD-3-Clause

package customsensor

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadFileReading reads one File-kind custom sensor: a single line
// containing one decimal number. Anything else is rejected rather than
// guessed at (spec §9).
func ReadFileReading(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open custom sensor file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, fmt.Errorf("%w: %s is empty", ErrMalformedFileReading, path)
	}
	line := strings.TrimSpace(scanner.Text())

	if scanner.Scan() && strings.TrimSpace(scanner.Text()) != "" {
		return 0, fmt.Errorf("%w: %s has more than one line", ErrMalformedFileReading, path)
	}

	value, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformedFileReading, path, err)
	}
	return value, nil
}
