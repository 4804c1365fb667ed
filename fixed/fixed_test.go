package fixed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KristinaGagalova/hpc-performance/nextflow"
)

func TestWriteReport(t *testing.T) {
	records := []nextflow.Record{
		{Name: "FASTQC", DurationRaw: "1h30m0s", DurationHours: 1.5, PeakMemory: "7.8 GB"},
		{Name: "ALIGN", DurationRaw: "45s", DurationHours: 45.0 / 3600, PeakMemory: ""},
	}
	var buf bytes.Buffer
	total, err := writeReport(records, 64, 4, &buf)
	if err != nil {
		t.Fatalf("writeReport returned error %q", err)
	}

	// 45s is 0.0125 hours, rounded to 0.01 before costing: 0.01 * 64 * 4 = 2.56.
	want := []string{
		"Name,Duration,Hours,Peak RSS,SU,CPUs,Cores",
		"FASTQC,1h30m0s,1.5,7.8 GB,384,4,256",
		"ALIGN,45s,0.01,N/A,2.56,4,256",
		"",
		"Total SU: 386.5600",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("Got %d lines, want %d:\n%s", len(got), len(want), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Line %d is %q, want %q", i+1, got[i], want[i])
		}
	}

	if total != 384+2.56 {
		t.Fatalf("Total = %v, want 386.56", total)
	}
}
