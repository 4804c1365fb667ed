// trace - Calculate the service units (SU) consumed by the tasks of a Nextflow run.
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
// The `trace` verb reads a Nextflow trace file and charges each task by its measured CPU
// utilization: SU = (cpu% / 100) * cores-per-cpu * duration-hours.  Utilization above 100%
// simply means the task was multithreaded.  One CSV row per task is written to stdout, followed
// by the aggregate total, which is what gets billed against the project allocation.

package trace

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
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
	inputFile   string
)

func Trace(progname string, args []string) error {
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

	records, err := nextflow.ReadFile(inputFile, nextflow.PipelineSchema)
	if err != nil {
		return err
	}
	common.Log.Infof("Read %d task records from %s", len(records), inputFile)

	_, err = writeReport(records, profile.CoresPerCpu, os.Stdout)
	return err
}

// Write the per-task rows and the aggregate total, returning the total.

func writeReport(records []nextflow.Record, coresPerCpu int, out io.Writer) (float64, error) {
	w := csv.NewWriter(out)
	w.Write([]string{"Name", "CPU%", "Cores", "Hours", "Peak RSS", "SU"})
	total := 0.0
	for _, r := range records {
		cost := su.Utilization(r.CpuPercent, coresPerCpu, r.DurationHours)
		total += cost
		w.Write([]string{
			r.Name,
			strconv.FormatFloat(r.CpuPercent, 'f', -1, 64) + "%",
			strconv.FormatFloat(su.UsedCores(r.CpuPercent, coresPerCpu), 'f', 2, 64),
			strconv.FormatFloat(r.DurationHours, 'f', 2, 64),
			nextflow.FormatMemory(r.PeakMemory),
			strconv.FormatFloat(cost, 'f', 2, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}
	_, err := fmt.Fprintf(out, "\nTotal Service Units (SU) for all tasks: %.2f\n", total)
	return total, err
}

func commandLine(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" trace", flag.ContinueOnError)
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
	if len(rest) != 1 {
		return fmt.Errorf("Usage: %s trace [options] trace-file", progname)
	}
	inputFile = rest[0]
	common.ApplyDefault(&clusterFile, common.DefaultCluster)
	return nil
}
