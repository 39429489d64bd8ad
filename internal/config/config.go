package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. The rendering defaults mirror the
// report package so that a zero-configuration run and a run with an
// empty config file produce identical output.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sleuth"

	// DefaultNCol is the number of columns in the package grid of the
	// text and HTML renderings. Three columns keep typical module paths
	// readable at the default text width.
	DefaultNCol = 3

	// DefaultTextWidth is the width of the plain-text rendering. 80
	// columns matches the classic terminal width the text layout was
	// designed around.
	DefaultTextWidth = 80
)

// Config holds all configuration options for sleuth.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., RenderConfig, OutputConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON output instead of the plain-text rendering.
	// Mutually exclusive with MarkdownReport and HTMLReport.
	JSONReport bool

	// MarkdownReport enables GitHub Flavored Markdown output instead of
	// the plain-text rendering. Mutually exclusive with JSONReport and
	// HTMLReport.
	MarkdownReport bool

	// HTMLReport enables HTML table output instead of the plain-text
	// rendering. Mutually exclusive with JSONReport and MarkdownReport.
	HTMLReport bool

	// Sort enables alphabetical package ordering in the rendered output.
	// When false, packages keep their insertion order.
	Sort bool

	// ShowOther includes the section listing every module the running
	// binary was built with, beyond the requested packages.
	ShowOther bool

	// NCol is the number of columns in the package grid.
	NCol int

	// TextWidth is the width of the plain-text rendering.
	TextWidth int

	// MaxWidth constrains the HTML rendering to a pixel width.
	// Zero means unconstrained.
	MaxWidth int

	// ReportTarget is the module whose dependency report should be
	// generated instead of the environment report: a path to a module
	// directory or its go.mod. Empty means report on the environment
	// itself.
	ReportTarget string

	// NoOptional suppresses the default optional-package list. This is
	// implied when ReportTarget is set, because a module report should
	// not be padded with unrelated defaults.
	NoOptional bool

	// ExtraMeta holds raw "key=value" pairs to include in the report,
	// as passed on the command line. Parsing happens at report build
	// time so a malformed pair is reported with its original text.
	ExtraMeta []string

	// OutputFile is the destination file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	OutputFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .sleuth.yaml in the current
	// directory, the user's home directory, and the XDG config directory.
	ConfigFilePath string

	// File holds the knowledge overrides loaded from the config file.
	// This is populated by Load and applied before report generation.
	File *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because the rendering defaults are non-zero. This also
// serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		NCol:      DefaultNCol,
		TextWidth: DefaultTextWidth,
	}
}

// XDGConfigDir returns the XDG config directory for sleuth.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/sleuth
// On macOS: ~/Library/Application Support/sleuth
// On Windows: %APPDATA%\sleuth
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any rendering begins.
func (c *Config) Validate() error {
	if c.NCol <= 0 {
		return ErrInvalidNCol
	}

	if c.TextWidth <= 0 {
		return ErrInvalidTextWidth
	}

	// At most one machine-oriented output format may be selected.
	formats := 0
	for _, set := range []bool{c.JSONReport, c.MarkdownReport, c.HTMLReport} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}
