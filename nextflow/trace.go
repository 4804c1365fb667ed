// Parsing of Nextflow trace files.
//
// A trace file is tab-separated text: one header line, then one line per executed task.  The
// column positions of the fields we need differ between trace layouts, so they are described by a
// Schema rather than hardcoded.  Two schemas are in use: PipelineSchema for the standard trace
// layout where per-task CPU utilization drives the cost model, and FixedSchema for traces
// processed under a known fixed CPU allocation, where the realtime column is the duration and no
// utilization is read.

package nextflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column offsets into a trace line.  A negative CpuPercentField means the schema carries no
// utilization column.

type Schema struct {
	Name            string
	NameField       int
	DurationField   int
	CpuPercentField int
	PeakMemoryField int
}

// MT: Constant after initialization; immutable (thread safe)
var (
	PipelineSchema = Schema{
		Name:            "pipeline",
		NameField:       0,
		DurationField:   7,
		CpuPercentField: 9,
		PeakMemoryField: 10,
	}
	FixedSchema = Schema{
		Name:            "fixed-cpus",
		NameField:       3,
		DurationField:   8,
		CpuPercentField: -1,
		PeakMemoryField: 10,
	}
)

func (s Schema) minFields() int {
	n := s.NameField
	for _, f := range []int{s.DurationField, s.CpuPercentField, s.PeakMemoryField} {
		if f > n {
			n = f
		}
	}
	return n + 1
}

// One task row.  Immutable once created.

type Record struct {
	Name          string
	DurationRaw   string
	DurationHours float64
	CpuPercent    float64
	PeakMemory    string
}

func ReadFile(filename string, schema Schema) ([]Record, error) {
	input, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	records, err := ReadRecords(input, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return records, nil
}

// Read all task records from a trace.  The header line is skipped and blank lines are ignored.
// A data line with too few columns or a malformed duration or CPU field is an error naming the
// line, never a silently skipped row.  Negative durations and CPU percentages are malformed: a
// record never carries a negative cost.

func ReadRecords(input io.Reader, schema Schema) ([]Record, error) {
	records := make([]Record, 0)
	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if lineno == 1 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < schema.minFields() {
			return nil, fmt.Errorf("Line %d: %d fields, %s schema needs %d",
				lineno, len(fields), schema.Name, schema.minFields())
		}

		durationRaw := strings.TrimSpace(fields[schema.DurationField])
		durationHours, err := ToHours(durationRaw)
		if err != nil {
			return nil, fmt.Errorf("Line %d: %w", lineno, err)
		}
		if durationHours < 0 {
			return nil, fmt.Errorf("Line %d: Negative duration %q", lineno, durationRaw)
		}

		var cpuPercent float64
		if schema.CpuPercentField >= 0 {
			raw := strings.TrimSpace(strings.ReplaceAll(fields[schema.CpuPercentField], "%", ""))
			cpuPercent, err = strconv.ParseFloat(raw, 64)
			if err != nil || cpuPercent < 0 {
				return nil, fmt.Errorf("Line %d: Invalid CPU percentage %q",
					lineno, fields[schema.CpuPercentField])
			}
		}

		records = append(records, Record{
			Name:          CleanName(fields[schema.NameField]),
			DurationRaw:   durationRaw,
			DurationHours: durationHours,
			CpuPercent:    cpuPercent,
			PeakMemory:    strings.TrimSpace(fields[schema.PeakMemoryField]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
