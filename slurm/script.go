// Generation of benchmark job scripts.
//
// A generated script requests exclusive node access for the given CPU count, runs the user's
// command with the {cores} and {cpus} placeholders substituted, and times itself: the elapsed
// wall-clock seconds are written to a per-CPU-count file that the sweep reads back after the job
// reaches a terminal state.  Slurm starts the job in the directory where sbatch was invoked, not
// in the directory holding the script, so the script names the record path explicitly.

package slurm

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

type ScriptRequest struct {
	CpuCount    int
	CoresPerCpu int

	// Command to run, may contain the {cores} and {cpus} placeholders
	Command string

	// Directory for the script file and its wall-time record; empty means the current directory
	Dir string

	JobName   string
	Account   string
	Partition string
	MemPerCpu string
	TimeLimit string
}

type scriptData struct {
	JobName      string
	CpuCount     int
	Cores        int
	TimeLimit    string
	Account      string
	Partition    string
	MemPerCpu    string
	Command      string
	WallTimeFile string
}

// MT: Constant after initialization; immutable (thread safe)
var scriptTemplate = template.Must(template.New("sbatch").Parse(`#!/bin/bash
#SBATCH --job-name={{.JobName}}
#SBATCH --ntasks={{.CpuCount}}
#SBATCH --cpus-per-task=1
#SBATCH --time={{.TimeLimit}}
#SBATCH --account={{.Account}}
#SBATCH --partition={{.Partition}}
#SBATCH --exclusive
#SBATCH --output=slurm-%j.out
#SBATCH --error=slurm-%j.err
#SBATCH --mem-per-cpu={{.MemPerCpu}}

echo "Running on $SLURM_JOB_NODELIST"
echo "Using {{.CpuCount}} CPUs and {{.Cores}} cores"

# Record start time
start_time=$(date +%s)

{{.Command}}

# Record end time
end_time=$(date +%s)
elapsed_time=$((end_time - start_time))

# Write the elapsed time to a file
echo "Elapsed time: $elapsed_time seconds" > "{{.WallTimeFile}}"
`))

// Substitute the placeholder tokens in a command template.

func ExpandCommand(command string, cores, cpus int) string {
	command = strings.ReplaceAll(command, "{cores}", strconv.Itoa(cores))
	return strings.ReplaceAll(command, "{cpus}", strconv.Itoa(cpus))
}

func ScriptFileName(cpuCount int) string {
	return fmt.Sprintf("slurm_job_%d.sh", cpuCount)
}

// The complete script text for the request.

func Script(req ScriptRequest) (string, error) {
	cores := req.CpuCount * req.CoresPerCpu
	data := scriptData{
		JobName:      req.JobName,
		CpuCount:     req.CpuCount,
		Cores:        cores,
		TimeLimit:    req.TimeLimit,
		Account:      req.Account,
		Partition:    req.Partition,
		MemPerCpu:    req.MemPerCpu,
		Command:      ExpandCommand(req.Command, cores, req.CpuCount),
		WallTimeFile: filepath.Join(req.Dir, WallTimeFileName(req.CpuCount)),
	}
	var b strings.Builder
	if err := scriptTemplate.Execute(&b, &data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write the script for the request into the request's directory, named deterministically from the
// CPU count, and return its path.

func WriteScript(req ScriptRequest) (string, error) {
	text, err := Script(req)
	if err != nil {
		return "", err
	}
	scriptPath := filepath.Join(req.Dir, ScriptFileName(req.CpuCount))
	if err := os.WriteFile(scriptPath, []byte(text), 0644); err != nil {
		return "", err
	}
	return scriptPath, nil
}
