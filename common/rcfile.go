// Defaults for command line options can be kept in an ini file in the user's home directory,
// making cluster-specific invocations less chatty:
//
//   # ~/.hpcperf
//   [defaults]
//   cluster = $HOME/.config/hpcperf/setonix.json
//   sweep-output = job_output.log
//   poll-timeout = 45m
//
// A default is applied only when the corresponding option was not given on the command line.
// Positional arguments are never defaulted from this file.

package common

import (
	"errors"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"
)

// MT: Constant after initialization
var (
	p        = ini.NewParser()
	store    *ini.Store
	defaults = p.AddSection("defaults")

	DefaultCluster     = defaults.AddString("cluster")
	DefaultSweepOutput = defaults.AddString("sweep-output")
	DefaultPollTimeout = defaults.AddString("poll-timeout")
)

func init() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	fn := path.Join(path.Clean(home), ".hpcperf")
	input, err := os.Open(fn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			Log.Errorf("Error in trying to open %s: %s", fn, err.Error())
		}
		return
	}
	defer input.Close()
	store, err = p.Parse(input)
	if err != nil {
		Log.Errorf("Error in trying to parse %s: %s", fn, err.Error())
		return
	}
}

// Apply the rc file default to *sp if *sp is empty and a default is present.  Environment
// variables in the value are expanded.

func ApplyDefault(sp *string, f *ini.Field) bool {
	if *sp != "" || store == nil || !f.Present(store) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(store))
	return true
}

// The expanded default value, and whether one is present.

func DefaultValue(f *ini.Field) (string, bool) {
	if store == nil || !f.Present(store) {
		return "", false
	}
	return os.ExpandEnv(f.StringVal(store)), true
}
