package nextflow

import (
	"strings"
	"testing"
)

const traceHeader = "task_id\thash\tnative_id\tname\tstatus\texit\tsubmit\tduration\trealtime\t%cpu\tpeak_rss"

var traceBody = strings.Join([]string{
	traceHeader,
	"1\t2f/9abc12\t100\tFASTQC (sample 1)\tCOMPLETED\t0\t2024-09-25 10:00:00\t1h30m0s\t1h29m50s\t103.5%\t7.8 GB",
	"",
	"2\t3a/1def45\t101\tALIGN (sample 1)\tCOMPLETED\t0\t2024-09-25 10:05:00\t45s\t40s\t850%\t-",
}, "\n")

func TestReadRecordsPipelineSchema(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(traceBody), PipelineSchema)
	if err != nil {
		t.Fatalf("ReadRecords returned error %q", err)
	}
	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2", len(records))
	}
	r := records[0]
	if r.Name != "1" || r.DurationRaw != "1h30m0s" || r.DurationHours != 1.5 {
		t.Fatalf("Bad first record %+v", r)
	}
	if r.CpuPercent != 103.5 || r.PeakMemory != "7.8 GB" {
		t.Fatalf("Bad first record %+v", r)
	}
	r = records[1]
	if r.Name != "2" || r.DurationHours != 45.0/3600 || r.CpuPercent != 850 || r.PeakMemory != "-" {
		t.Fatalf("Bad second record %+v", r)
	}
}

func TestReadRecordsFixedSchema(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(traceBody), FixedSchema)
	if err != nil {
		t.Fatalf("ReadRecords returned error %q", err)
	}
	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2", len(records))
	}
	r := records[0]
	if r.Name != "FASTQC" {
		t.Fatalf("Annotation not stripped: %q", r.Name)
	}
	if r.DurationRaw != "1h29m50s" || r.DurationHours != 1+29.0/60+50.0/3600 {
		t.Fatalf("Wrong duration column: %+v", r)
	}
	if r.CpuPercent != 0 {
		t.Fatalf("Schema without utilization must leave CpuPercent zero: %+v", r)
	}
}

func TestReadRecordsErrors(t *testing.T) {
	cases := []struct {
		label string
		body  string
	}{
		{"short row", traceHeader + "\n1\t2f/9abc12\t100"},
		{"bad duration", strings.Replace(traceBody, "1h30m0s", "??h", 1)},
		{"bad cpu", strings.Replace(traceBody, "103.5%", "lots%", 1)},
		{"negative duration", strings.Replace(traceBody, "1h30m0s", "-1h30m0s", 1)},
		{"negative cpu", strings.Replace(traceBody, "103.5%", "-50%", 1)},
	}
	for _, c := range cases {
		_, err := ReadRecords(strings.NewReader(c.body), PipelineSchema)
		if err == nil {
			t.Fatalf("No error for %s", c.label)
		}
		if !strings.Contains(err.Error(), "Line 2") {
			t.Fatalf("Error for %s does not name the line: %q", c.label, err)
		}
	}
}

func TestReadRecordsHeaderOnly(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(traceHeader+"\n"), PipelineSchema)
	if err != nil {
		t.Fatalf("ReadRecords returned error %q", err)
	}
	if len(records) != 0 {
		t.Fatalf("Got %d records from a header-only trace", len(records))
	}
}
