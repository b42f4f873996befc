// Package fam builds the local protein/mutation database and scores its
// variants against oversized external pathogenicity datasets.
package fam

import (
	"log"
	"os"
)

// verbosity thresholds, matching the -v flag levels
const (
	VerboseCritical       = 0
	VerboseProgress       = 1
	VerboseWarning        = 1
	VerboseThreadWarnings = 2
	VerboseThreadProgress = 3
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)

	// verbosity is the process-wide log level set by the CLI
	verbosity = VerboseProgress
)

// SetVerbosity sets the process-wide log level (0-3).
func SetVerbosity(v int) {
	verbosity = v
}

// printIf logs to stderr when the configured verbosity reaches threshold.
func printIf(threshold int, format string, args ...interface{}) {
	if verbosity >= threshold {
		stderr.Printf(format, args...)
	}
}
