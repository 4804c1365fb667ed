// fixed - Calculate the service units (SU) consumed by a Nextflow run with a fixed CPU
// allocation.
//
// End-user options:
//
//  -cluster filename
//    Read the cluster cost profile from this JSON `filename`.  The default profile describes
//    Setonix: 64 cores per CPU, 1 SU per core-hour.  A persistent default can be set in
//    ~/.hpcperf.
//
//  -cores-per-cpu n
//    Override the profile's cores-per-CPU count.
//
// Debugging / development options:
//
//  -v
//    Print various (verbose) debugging output
//
// Description:
//
// Unlike `trace`, which weighs each task by its measured utilization, `fixed` assumes every task
// held the given number of CPUs for its whole runtime, the way exclusive allocations are billed:
// SU = hours * cores-per-cpu * CPUs, with hours rounded to two decimals so the cost agrees with
// the printed Hours column.  The trace's realtime column is the duration here.  One CSV row per
// task goes to stdout, then the aggregate total.

package fixed

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/KristinaGagalova/hpc-performance/cluster"
	"github.com/KristinaGagalova/hpc-performance/common"
	"github.com/KristinaGagalova/hpc-performance/nextflow"
	"github.com/KristinaGagalova/hpc-performance/status"
	"github.com/KristinaGagalova/hpc-performance/su"
)

// Command-line options
var (
	clusterFile string
	coresPerCpu int
	verbose     bool
	cpuCount    int
	inputFile   string
)

func Fixed(progname string, args []string) error {
	err := commandLine(progname, args)
	if err != nil {
		return err
	}
	if verbose {
		common.Log.LowerLevelTo(status.LogLevelInfo)
	}

	profile, err := cluster.FromFlag(clusterFile)
	if err != nil {
		return err
	}
	if coresPerCpu > 0 {
		profile.CoresPerCpu = coresPerCpu
	}

	records, err := nextflow.ReadFile(inputFile, nextflow.FixedSchema)
	if err != nil {
		return err
	}
	common.Log.Infof("Read %d task records from %s", len(records), inputFile)

	_, err = writeReport(records, profile.CoresPerCpu, cpuCount, os.Stdout)
	return err
}

// Write the per-task rows and the aggregate total, returning the total.  Hours are rounded to
// two decimals before costing.

func writeReport(records []nextflow.Record, coresPerCpu, cpuCount int, out io.Writer) (float64, error) {
	cores := coresPerCpu * cpuCount
	w := csv.NewWriter(out)
	w.Write([]string{"Name", "Duration", "Hours", "Peak RSS", "SU", "CPUs", "Cores"})
	total := 0.0
	for _, r := range records {
		hours := math.Round(r.DurationHours*100) / 100
		cost := su.Fixed(hours, coresPerCpu, cpuCount)
		total += cost
		w.Write([]string{
			r.Name,
			r.DurationRaw,
			strconv.FormatFloat(hours, 'f', -1, 64),
			nextflow.FormatMemory(r.PeakMemory),
			strconv.FormatFloat(cost, 'f', -1, 64),
			strconv.Itoa(cpuCount),
			strconv.Itoa(cores),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}
	_, err := fmt.Fprintf(out, "\nTotal SU: %.4f\n", total)
	return total, err
}

func commandLine(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" fixed", flag.ContinueOnError)
	opts.StringVar(&clusterFile, "cluster", "", "Read the cluster cost profile from JSON `filename`")
	opts.IntVar(&coresPerCpu, "cores-per-cpu", 0, "Override the profile's cores-per-CPU `count`")
	opts.BoolVar(&verbose, "v", false, "Verbose (debugging) output")
	err := opts.Parse(args)
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		return err
	}
	if coresPerCpu < 0 {
		return fmt.Errorf("Nonsensical -cores-per-cpu %d", coresPerCpu)
	}
	rest := opts.Args()
	if len(rest) != 2 {
		return fmt.Errorf("Usage: %s fixed [options] cpu-count trace-file", progname)
	}
	cpuCount, err = strconv.Atoi(rest[0])
	if err != nil || cpuCount <= 0 {
		return fmt.Errorf("Invalid CPU count %q", rest[0])
	}
	inputFile = rest[1]
	common.ApplyDefault(&clusterFile, common.DefaultCluster)
	return nil
}
