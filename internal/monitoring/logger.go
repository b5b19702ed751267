// Package monitoring provides the process-wide diagnostic logger used by the
// figure pipeline. Output goes through a replaceable function so tests can
// mute it and tools can redirect it.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

var verbose bool

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetVerbose enables or disables Debugf output.
func SetVerbose(v bool) {
	verbose = v
}

// Debugf logs through Logf only when verbose mode is enabled. The pipeline
// uses it for per-figure timing and intermediate statistics.
func Debugf(format string, v ...interface{}) {
	if verbose {
		Logf(format, v...)
	}
}
