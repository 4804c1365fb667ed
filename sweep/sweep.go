// sweep - Benchmark a command across CPU counts on a Slurm cluster and report the SU cost of
// each configuration.
//
// End-user options:
//
//  -cluster filename
//    Read the cluster cost profile from this JSON `filename`.  The default profile describes
//    Setonix: 64 cores per CPU, 1 SU per core-hour, 200GB per task, a one-day time limit, and a
//    10 second poll interval.  A persistent default can be set in ~/.hpcperf.
//
//  -dir directory
//    Working directory for the generated job scripts and their wall-time records.  The default
//    is the current directory.
//
//  -output filename
//    Write the sweep report to this file, default job_output.log.
//
//  -job-name prefix
//    Job name prefix; jobs are named <prefix>_<n>_cpus.  The default is test_job.
//
//  -poll-timeout duration
//    Give up waiting for a job after this long, eg 45m or 2h.  The default is to wait forever,
//    which is the legacy behavior: the scheduler's own time limit bounds the jobs, not us.  A
//    timed-out job is reported with a zero SU like any job that produced no wall-time record.
//
// Debugging / development options:
//
//  -v
//    Print various (verbose) debugging output
//
// Description:
//
// For each CPU count in the list, the verb generates a batch script that runs the command with
// the {cores} and {cpus} placeholders substituted and submits it.  All submissions happen first,
// so the cluster is free to run the jobs concurrently; only then does the verb poll each job to a
// terminal state, sequentially and in the given order.  When all jobs are done it reads back the
// per-job wall-time records and writes one fixed-width report line per CPU count plus the
// aggregate total.  A failed submission or a missing wall-time record gives that CPU count a
// visible zero-SU line rather than aborting the sweep.

package sweep

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KristinaGagalova/hpc-performance/cluster"
	"github.com/KristinaGagalova/hpc-performance/common"
	"github.com/KristinaGagalova/hpc-performance/slurm"
	"github.com/KristinaGagalova/hpc-performance/status"
	"github.com/KristinaGagalova/hpc-performance/su"
)

// Command-line options
var (
	clusterFile string
	dir         string
	output      string
	jobPrefix   string
	pollTimeout time.Duration
	verbose     bool

	cpuCounts []int
	command   string
	account   string
	partition string
)

// Everything one sweep needs.  Read-only for the lifetime of the sweep.
type Config struct {
	CpuCounts   []int
	Command     string
	JobPrefix   string
	Account     string
	Partition   string
	Dir         string
	Profile     cluster.Profile
	PollTimeout time.Duration
}

func Sweep(progname string, args []string) error {
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

	cfg := Config{
		CpuCounts:   cpuCounts,
		Command:     command,
		JobPrefix:   jobPrefix,
		Account:     account,
		Partition:   partition,
		Dir:         dir,
		Profile:     profile,
		PollTimeout: pollTimeout,
	}
	scheduler := &slurm.Client{Sbatch: profile.Sbatch, Sacct: profile.Sacct}

	logfile, err := os.Create(output)
	if err != nil {
		return err
	}
	defer logfile.Close()

	return Run(cfg, scheduler, logfile)
}

type submittedJob struct {
	cpuCount int
	id       slurm.JobID
}

// Run drives the sweep: all submissions first, then polling, then the report.  Submission
// failures and jobs that never produced a wall-time record are logged and show up in the report
// as zero-SU lines; they do not abort the sweep.

func Run(cfg Config, scheduler slurm.Scheduler, out io.Writer) error {
	fmt.Fprintf(out, "%-10s%-10s%-10s\n", "CPUs", "Cores", "SU")
	fmt.Fprintln(out, strings.Repeat("=", 30))

	// Submit all jobs first so the cluster can run them concurrently.
	jobs := make([]submittedJob, 0, len(cfg.CpuCounts))
	for _, n := range cfg.CpuCounts {
		req := slurm.ScriptRequest{
			CpuCount:    n,
			CoresPerCpu: cfg.Profile.CoresPerCpu,
			Command:     cfg.Command,
			Dir:         cfg.Dir,
			JobName:     fmt.Sprintf("%s_%d_cpus", cfg.JobPrefix, n),
			Account:     cfg.Account,
			Partition:   cfg.Partition,
			MemPerCpu:   cfg.Profile.MemPerCpu,
			TimeLimit:   cfg.Profile.TimeLimit,
		}
		scriptPath, err := slurm.WriteScript(req)
		if err != nil {
			return err
		}
		id, err := scheduler.Submit(scriptPath)
		if err != nil {
			common.Log.Errorf("Submission failed for %d CPUs: %v", n, err)
			continue
		}
		common.Log.Infof("Submitted %s as job %s", scriptPath, id)
		jobs = append(jobs, submittedJob{n, id})
	}

	// Wait for every submitted job to reach a terminal state, in submission order.
	for _, job := range jobs {
		common.Log.Infof("Waiting for job %s (%d CPUs)", job.id, job.cpuCount)
		err := slurm.Await(scheduler, job.id, cfg.Profile.PollInterval(), cfg.PollTimeout)
		if err != nil {
			common.Log.Warningf("Giving up on job %s (%d CPUs): %v", job.id, job.cpuCount, err)
		}
	}

	// Read back the wall times and cost each configuration.
	total := 0.0
	for _, n := range cfg.CpuCounts {
		hours, err := slurm.ReadWallTime(cfg.Dir, n)
		if err != nil {
			common.Log.Warningf("Wall time for %d CPUs unusable: %v", n, err)
			hours = 0
		}
		cores := n * cfg.Profile.CoresPerCpu
		cost := su.Charge(cores, hours, cfg.Profile.SuPerCoreHour)
		total += cost
		fmt.Fprintf(out, "%-10d%-10d%-10.2f\n", n, cores, cost)
	}
	fmt.Fprintln(out, strings.Repeat("=", 30))
	fmt.Fprintf(out, "%-10s%-10s%-10.2f\n", "Total", "", total)
	return nil
}

func commandLine(progname string, args []string) error {
	opts := flag.NewFlagSet(progname+" sweep", flag.ContinueOnError)
	opts.StringVar(&clusterFile, "cluster", "", "Read the cluster cost profile from JSON `filename`")
	opts.StringVar(&dir, "dir", ".", "Job scripts and wall-time records go in `directory`")
	opts.StringVar(&output, "output", "", "Write the sweep report to `filename` (default job_output.log)")
	opts.StringVar(&jobPrefix, "job-name", "test_job", "Job name `prefix`")
	opts.DurationVar(&pollTimeout, "poll-timeout", 0, "Give up waiting for a job after `duration` (default: wait forever)")
	opts.BoolVar(&verbose, "v", false, "Verbose (debugging) output")
	err := opts.Parse(args)
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		return err
	}
	rest := opts.Args()
	if len(rest) < 4 {
		return fmt.Errorf(
			"Usage: %s sweep [options] cpu-list command account partition\n"+
				"Example: %s sweep 2,4,8,16,32 'my_tool --consCores {cores} -o output_{cpus}' my_account my_partition",
			progname, progname)
	}
	cpuCounts, err = parseCpuList(rest[0])
	if err != nil {
		return err
	}
	command = rest[1]
	account = rest[2]
	partition = rest[3]

	common.ApplyDefault(&clusterFile, common.DefaultCluster)
	common.ApplyDefault(&output, common.DefaultSweepOutput)
	if output == "" {
		output = "job_output.log"
	}
	if pollTimeout == 0 {
		if v, ok := common.DefaultValue(common.DefaultPollTimeout); ok {
			pollTimeout, err = time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("Invalid poll-timeout default %q: %w", v, err)
			}
		}
	}
	return nil
}

func parseCpuList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	counts := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("Invalid CPU count %q in list %q", part, s)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
