// Superstructure for HPC cost estimation and benchmarking.
//
// Run `hpcperf help` for help.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/KristinaGagalova/hpc-performance/fixed"
	"github.com/KristinaGagalova/hpc-performance/sweep"
	"github.com/KristinaGagalova/hpc-performance/trace"
)

const hpcperfVersion = "0.1.0"

type command struct {
	help    string
	handler func(arg0 string, args []string) error
}

var commandSummary = "<verb> <option> ... [argument ...]"

var commands = map[string]command{
	"trace": command{
		"Estimate the SU cost of each task in a Nextflow trace from its measured CPU utilization",
		trace.Trace,
	},
	"fixed": command{
		"Estimate the SU cost of each task in a Nextflow trace for a fixed CPU allocation",
		fixed.Fixed,
	},
	"sweep": command{
		"Benchmark a command across CPU counts on a Slurm cluster and report the SU cost of each",
		sweep.Sweep,
	},
	"version": command{
		"Print the program version",
		func(arg0 string, args []string) error {
			fmt.Printf("hpcperf version(%s)\n", hpcperfVersion)
			return nil
		},
	},
}

func main() {
	if len(os.Args) < 2 {
		usage(1)
	}
	if entry, found := commands[os.Args[1]]; found {
		err := entry.handler(os.Args[0], os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "HPCPERF FAILED\n%v\n\n", err)
			usage(1)
		}
	} else if os.Args[1] == "help" {
		usage(0)
	} else {
		usage(1)
	}
}

func usage(code int) {
	out := os.Stdout
	if code != 0 {
		out = os.Stderr
	}
	fmt.Fprintf(out, "Usage of %s:\n\n  %s %s\n\n", os.Args[0], os.Args[0], commandSummary)
	fmt.Fprintf(out, "where <verb> is one of\n\n")
	entries := make(sort.StringSlice, 0)
	for name, command := range commands {
		entries = append(entries, "  "+name+"\n    "+command.help)
	}
	sort.Sort(entries)
	for _, e := range entries {
		fmt.Fprintln(out, e)
	}
	fmt.Fprintln(out, "\nAll verbs accept -h to print verb-specific help.")
	fmt.Fprintln(out, "Defaults for some options can be set in the [defaults] section of ~/.hpcperf.")
	os.Exit(code)
}
