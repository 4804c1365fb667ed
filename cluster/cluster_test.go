package cluster

import (
	"strings"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()
	if p.CoresPerCpu != 64 || p.SuPerCoreHour != 1.0 {
		t.Fatalf("Bad reference billing values %d %g", p.CoresPerCpu, p.SuPerCoreHour)
	}
	if p.MemPerCpu != "200GB" || p.TimeLimit != "1-00:00:00" {
		t.Fatalf("Bad reference job limits %q %q", p.MemPerCpu, p.TimeLimit)
	}
	if p.Sbatch != "sbatch" || p.Sacct != "sacct" || p.PollIntervalSecs != 10 {
		t.Fatalf("Bad reference scheduler values %q %q %d", p.Sbatch, p.Sacct, p.PollIntervalSecs)
	}
}

func TestReadProfileDefaulting(t *testing.T) {
	p, err := ReadProfileFrom(strings.NewReader(`{"name":"lumi","cores_per_cpu":128}`))
	if err != nil {
		t.Fatalf("ReadProfileFrom returned error %q", err)
	}
	if p.Name != "lumi" || p.CoresPerCpu != 128 {
		t.Fatalf("Explicit fields lost: %+v", p)
	}
	if p.SuPerCoreHour != 1.0 || p.Sbatch != "sbatch" || p.PollIntervalSecs != 10 {
		t.Fatalf("Absent fields did not inherit reference values: %+v", p)
	}
}

func TestReadProfileValidation(t *testing.T) {
	bad := []string{
		`{"cores_per_cpu":-1}`,
		`{"su_per_core_hour":0}`,
		`{"mem_per_cpu":""}`,
		`{"time_limit":""}`,
		`{"sbatch":""}`,
		`{"poll_interval_secs":-5}`,
		`{"cores_per_cpu":"sixty-four"}`,
		`not json at all`,
	}
	for _, input := range bad {
		if _, err := ReadProfileFrom(strings.NewReader(input)); err == nil {
			t.Fatalf("No error for %s", input)
		}
	}
}
