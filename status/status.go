// Basic logging infrastructure shared by all the verbs.

package status

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// LogLevel indicates the lowest level of message that should be printed.

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
	LogLevelCritical
)

// Implementations of this must be thread-safe.
type Logger interface {
	// Print only messages at level l or above
	SetLevel(l LogLevel)

	// Lower log level at least to l
	LowerLevelTo(l LogLevel)

	// Print on this stream, if installed
	SetStderr(w io.Writer)

	// Print at various levels.  None of these must exit or panic, the name indicates the log level
	// only.
	Debug(xs ...any)
	Debugf(format string, args ...any)

	Info(xs ...any)
	Infof(format string, args ...any)

	Warning(xs ...any)
	Warningf(format string, args ...any)

	Error(xs ...any)
	Errorf(format string, args ...any)

	Critical(xs ...any)
	Criticalf(format string, args ...any)
}

type StandardLogger struct {
	sync.Mutex
	level  LogLevel
	stderr io.Writer
}

// MT: Constant after initialization, thread-safe.
var defaultLogger Logger = &StandardLogger{
	level:  LogLevelWarning,
	stderr: os.Stderr,
}

func Default() Logger {
	return defaultLogger
}

func (sl *StandardLogger) SetLevel(l LogLevel) {
	sl.Lock()
	defer sl.Unlock()

	sl.level = l
}

func (sl *StandardLogger) LowerLevelTo(l LogLevel) {
	sl.Lock()
	defer sl.Unlock()

	if sl.level > l {
		sl.level = l
	}
}

func (sl *StandardLogger) SetStderr(stderr io.Writer) {
	sl.Lock()
	defer sl.Unlock()

	sl.stderr = stderr
}

func (sl *StandardLogger) emit(l LogLevel, s string) {
	if sl.level <= l && sl.stderr != nil {
		fmt.Fprintln(sl.stderr, s)
	}
}

func (sl *StandardLogger) Critical(xs ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelCritical, fmt.Sprint(xs...))
}

func (sl *StandardLogger) Criticalf(format string, args ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelCritical, fmt.Sprintf(format, args...))
}

func (sl *StandardLogger) Error(xs ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelError, fmt.Sprint(xs...))
}

func (sl *StandardLogger) Errorf(format string, args ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelError, fmt.Sprintf(format, args...))
}

func (sl *StandardLogger) Warning(xs ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelWarning, fmt.Sprint(xs...))
}

func (sl *StandardLogger) Warningf(format string, args ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelWarning, fmt.Sprintf(format, args...))
}

func (sl *StandardLogger) Info(xs ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelInfo, fmt.Sprint(xs...))
}

func (sl *StandardLogger) Infof(format string, args ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelInfo, fmt.Sprintf(format, args...))
}

func (sl *StandardLogger) Debug(xs ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelDebug, fmt.Sprint(xs...))
}

func (sl *StandardLogger) Debugf(format string, args ...any) {
	sl.Lock()
	defer sl.Unlock()

	sl.emit(LogLevelDebug, fmt.Sprintf(format, args...))
}
