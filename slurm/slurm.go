// Interface to the Slurm workload manager.
//
// The two operations the sweep needs are submission and status, and they are behind the narrow
// Scheduler interface so that sweep sequencing can be driven by a fake in tests.  Client is the
// real implementation on top of the sbatch and sacct commands.

package slurm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/KristinaGagalova/hpc-performance/process"
)

type JobID string

type Scheduler interface {
	// Submit the script, returning the scheduler-assigned job ID
	Submit(scriptPath string) (JobID, error)

	// The scheduler's current state text for the job
	JobState(id JobID) (string, error)
}

// Client runs the real scheduler commands.  The command names come from the cluster profile.
type Client struct {
	Sbatch string
	Sacct  string
}

// MT: Constant after initialization
var jobIdRe = regexp.MustCompile(`^\d+$`)

func (c *Client) Submit(scriptPath string) (JobID, error) {
	stdout, stderr, err := process.RunSubprocess("submit", c.Sbatch, []string{scriptPath})
	if err != nil {
		if stderr != "" {
			return "", errors.Join(err, fmt.Errorf("With stderr:\n%s", stderr))
		}
		return "", err
	}
	return ParseSubmitOutput(stdout)
}

// Extract the job ID from sbatch output.  sbatch prints "Submitted batch job <id>", possibly
// preceded by site banners, so the ID is the mandatory final token and must be numeric.

func ParseSubmitOutput(stdout string) (JobID, error) {
	fields := strings.Fields(stdout)
	if len(fields) == 0 || !jobIdRe.MatchString(fields[len(fields)-1]) {
		return "", fmt.Errorf("No job ID in sbatch output %q", stdout)
	}
	return JobID(fields[len(fields)-1]), nil
}

func (c *Client) JobState(id JobID) (string, error) {
	stdout, _, err := process.RunSubprocess("job status", c.Sacct,
		[]string{"-j", string(id), "--format=State", "--noheader"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout), nil
}

// MT: Constant after initialization; immutable (thread safe)
var terminalStates = []string{"COMPLETED", "FAILED", "CANCELLED"}

// A state is terminal when no further transition will happen.  sacct prints one state per job
// step and may decorate it ("CANCELLED by 123"), hence substring matching.

func IsTerminalState(state string) bool {
	for _, terminal := range terminalStates {
		if strings.Contains(state, terminal) {
			return true
		}
	}
	return false
}

var ErrPollTimeout = errors.New("Timed out waiting for job to reach a terminal state")

// Await blocks until the scheduler reports a terminal state for the job, querying its state at
// every interval.  A failed or empty status query counts as "not terminal yet" and polling
// continues.  With timeout zero the wait is unbounded, which is the legacy behavior; a positive
// timeout bounds the wait and expiry yields ErrPollTimeout.

func Await(s Scheduler, id JobID, interval, timeout time.Duration) error {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		state, err := s.JobState(id)
		if err == nil && IsTerminalState(state) {
			return nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return fmt.Errorf("%w: job %s", ErrPollTimeout, id)
		}
		time.Sleep(interval)
	}
}
