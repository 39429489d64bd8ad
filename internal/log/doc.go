// Package log provides compact diagnostic logging for sleuth, built on
// top of the standard slog package.
//
// sleuth's primary output is the report itself, written to stdout.
// Diagnostics therefore go to a separate writer (typically stderr) in a
// deliberately terse format: no timestamps, one line per record, so
// verbose runs stay readable next to the report.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("version probe failed",
//	    "module", "github.com/example/alpha",
//	    "step", "field",
//	)
package log
