package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidNCol is returned when the package-column count is not
	// positive. Zero columns would make the package grid unrenderable.
	ErrInvalidNCol = errors.New("invalid column count: must be positive")

	// ErrInvalidTextWidth is returned when the text width is not positive.
	// The plain-text renderer needs at least a few columns to draw rules
	// and wrap lines.
	ErrInvalidTextWidth = errors.New("invalid text width: must be positive")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown, and --html is specified. Only one output format
	// can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json, --markdown, and --html cannot be combined")
)
