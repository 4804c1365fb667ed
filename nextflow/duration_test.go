package nextflow

import (
	"fmt"
	"testing"
)

func TestToHours(t *testing.T) {
	good := []struct {
		input string
		hours float64
	}{
		{"1h30m0s", 1.5},
		{"0h0m90s", 0.025},
		{"45s", 0.0125},
		{"2h", 2},
		{"10m", 10.0 / 60},
		{"1.5s", 1.5 / 3600},
		{"1h 30m 10s", 1 + 30.0/60 + 10.0/3600},
		{"", 0},
		{"-", 0},
		{"n/a", 0},
	}
	for _, c := range good {
		hours, err := ToHours(c.input)
		if err != nil {
			t.Fatalf("ToHours(%q) returned error %q", c.input, err)
		}
		if hours != c.hours {
			t.Fatalf("ToHours(%q) = %v, want %v", c.input, hours, c.hours)
		}
	}
}

func TestToHoursComposition(t *testing.T) {
	// Every well-formed HhMmSs composition must equal h + m/60 + s/3600 exactly.
	for _, h := range []int{0, 1, 23} {
		for _, m := range []int{0, 30, 59} {
			for _, s := range []float64{0, 0.5, 90} {
				input := fmt.Sprintf("%dh%dm%gs", h, m, s)
				hours, err := ToHours(input)
				if err != nil {
					t.Fatalf("ToHours(%q) returned error %q", input, err)
				}
				want := float64(h) + float64(m)/60 + s/3600
				if hours != want {
					t.Fatalf("ToHours(%q) = %v, want %v", input, hours, want)
				}
			}
		}
	}
}

func TestToHoursMalformed(t *testing.T) {
	bad := []string{
		"xh",
		"1.5h",
		"1x30m",
		"500ms",
		"h",
		"bad s",
	}
	for _, input := range bad {
		if _, err := ToHours(input); err == nil {
			t.Fatalf("No error for %q", input)
		}
	}
}
