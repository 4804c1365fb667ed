// Wall-time records.  A generated job script writes "Elapsed time: <n> seconds" to its
// per-CPU-count file when the command finishes; the sweep reads these back once all jobs have
// reached a terminal state.

package slurm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func WallTimeFileName(cpuCount int) string {
	return fmt.Sprintf("job-%d.time", cpuCount)
}

// Read the recorded wall time for the CPU count, in hours.  A missing file means the job never
// wrote its record (cancelled, failed early) and yields zero hours without an error; the caller
// reports the visible zero.  A file that exists but cannot be parsed is an error.

func ReadWallTime(dir string, cpuCount int) (float64, error) {
	filename := filepath.Join(dir, WallTimeFileName(cpuCount))
	bytes, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	fields := strings.Fields(string(bytes))
	if len(fields) < 3 {
		return 0, fmt.Errorf("Malformed wall-time record in %s", filename)
	}
	seconds, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, fmt.Errorf("Malformed wall-time record in %s: %w", filename, err)
	}
	return seconds / 3600, nil
}
