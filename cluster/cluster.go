// Manage cluster cost profiles.
//
// A profile is a JSON object describing the billing and submission parameters of one cluster:
// how many cores a "CPU" allocation unit carries, what one core-hour costs in service units,
// and the fixed directives used when benchmark jobs are generated for the cluster.  Fields that
// are absent from the file inherit the reference values, which describe Pawsey's Setonix
// (AMD Milan, 64 cores per CPU socket, 1 SU per core-hour).

package cluster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

type Profile struct {
	// Name the cluster is known by, informational only
	Name string `json:"name"`

	// Number of physical cores in one allocatable CPU unit
	CoresPerCpu int `json:"cores_per_cpu"`

	// Service units charged for one core-hour
	SuPerCoreHour float64 `json:"su_per_core_hour"`

	// Per-task memory reservation for generated benchmark jobs
	MemPerCpu string `json:"mem_per_cpu"`

	// Wall-clock limit for generated benchmark jobs, scheduler syntax
	TimeLimit string `json:"time_limit"`

	// Scheduler command names, overridable for nonstandard installations
	Sbatch string `json:"sbatch,omitempty"`
	Sacct  string `json:"sacct,omitempty"`

	// Seconds between job status queries
	PollIntervalSecs int `json:"poll_interval_secs,omitempty"`
}

// The reference profile.

func Default() Profile {
	return Profile{
		Name:             "setonix",
		CoresPerCpu:      64,
		SuPerCoreHour:    1.0,
		MemPerCpu:        "200GB",
		TimeLimit:        "1-00:00:00",
		Sbatch:           "sbatch",
		Sacct:            "sacct",
		PollIntervalSecs: 10,
	}
}

func (p Profile) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalSecs) * time.Second
}

// Resolve a -cluster option value: the named profile file, or the reference profile when no
// file is named.

func FromFlag(filename string) (Profile, error) {
	if filename == "" {
		return Default(), nil
	}
	return ReadProfile(filename)
}

// Read a profile from a JSON file, filling in reference values for absent fields.

func ReadProfile(filename string) (Profile, error) {
	input, err := os.Open(filename)
	if err != nil {
		return Profile{}, err
	}
	defer input.Close()

	return ReadProfileFrom(input)
}

func ReadProfileFrom(input io.Reader) (Profile, error) {
	p := Default()

	bytes, err := io.ReadAll(input)
	if err != nil {
		return Profile{}, err
	}

	err = json.Unmarshal(bytes, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("While unmarshaling cluster profile: %w", err)
	}

	if p.CoresPerCpu <= 0 {
		return Profile{}, fmt.Errorf("Nonsensical cores_per_cpu %d for %s", p.CoresPerCpu, p.Name)
	}
	if p.SuPerCoreHour <= 0 {
		return Profile{}, fmt.Errorf("Nonsensical su_per_core_hour %g for %s", p.SuPerCoreHour, p.Name)
	}
	if p.MemPerCpu == "" || p.TimeLimit == "" {
		return Profile{}, fmt.Errorf("Missing job resource limits for %s", p.Name)
	}
	if p.Sbatch == "" || p.Sacct == "" {
		return Profile{}, fmt.Errorf("Missing scheduler command names for %s", p.Name)
	}
	if p.PollIntervalSecs <= 0 {
		return Profile{}, fmt.Errorf("Nonsensical poll_interval_secs %d for %s", p.PollIntervalSecs, p.Name)
	}

	return p, nil
}
