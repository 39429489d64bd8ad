// Package main provides the entry point for the sleuth CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sleuth-go/sleuth/internal/config"
	"github.com/sleuth-go/sleuth/internal/log"
	"github.com/sleuth-go/sleuth/internal/report"
	"github.com/sleuth-go/sleuth/internal/resolve"
)

// NewRootCmd creates the root command for sleuth.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleuth [module...]",
		Short: "Report on the Go environment and installed module versions",
		Long: `sleuth generates a report of the environment it runs in: operating
system, hardware, Go toolchain, and the versions of requested modules.

By default, sleuth reports on itself and a small set of common modules.
Positional arguments name extra modules to include; --report switches
to reporting on another module's declared dependencies instead.

Examples:
  # Report on the current environment
  sleuth

  # Include specific modules in the report
  sleuth golang.org/x/text github.com/spf13/cobra

  # Report on the dependencies of a module
  sleuth --report ./path/to/module

  # Machine-oriented output
  sleuth --json
  sleuth --markdown

Configuration file (.sleuth.yaml) example:
  optional:
    - github.com/example/extra
  aliases:
    github.com/example/extra/sub: github.com/example/extra
  render:
    ncol: 4
    sort: true`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runRootCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Report scope flags
	cmd.Flags().StringP("report", "r", "",
		"Report on a module's dependencies: path to a module directory or go.mod")
	cmd.Flags().Bool("no-opt", false,
		"Suppress the default optional packages (implied by --report)")
	cmd.Flags().StringArray("meta", nil,
		"Extra key=value pair to include in the report (repeatable)")

	// Rendering flags
	cmd.Flags().Bool("sort", false, "Sort packages alphabetically")
	cmd.Flags().Bool("show-other", false,
		"List every module the binary was built with, beyond the requested ones")
	cmd.Flags().Int("ncol", config.DefaultNCol, "Number of package columns")
	cmd.Flags().Int("width", config.DefaultTextWidth, "Width of the plain-text report")
	cmd.Flags().Int("max-width", 0, "Maximum width of the HTML report in pixels (0 = unlimited)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown and --html)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json and --html)")
	cmd.Flags().Bool("html", false,
		"Output an HTML table (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sleuth.yaml in current, home, or XDG config directory)")

	// Add subcommands
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// runRootCmd executes the report generation. Positional arguments are
// extra modules to include.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	r, err := buildReport(cfg, args, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeOut()

	if _, err := newWriter(out, cfg).Write(r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// buildConfig creates a Config from cobra command flags and the
// configuration file. Precedence: CLI flags > config file > defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently run without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.Find(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.File, err = config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.File.Apply(cfg)
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg.ReportTarget, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}

	// --no-opt defaults to true when --report is used: a module report
	// should not be padded with unrelated default packages.
	if cmd.Flags().Changed("no-opt") {
		cfg.NoOptional, err = cmd.Flags().GetBool("no-opt")
		if err != nil {
			return nil, err
		}
	} else {
		cfg.NoOptional = cfg.ReportTarget != ""
	}

	// Rendering flags override the config file only when set explicitly.
	if cmd.Flags().Changed("ncol") {
		cfg.NCol, err = cmd.Flags().GetInt("ncol")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("width") {
		cfg.TextWidth, err = cmd.Flags().GetInt("width")
		if err != nil {
			return nil, err
		}
	}
	cfg.MaxWidth, err = cmd.Flags().GetInt("max-width")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("sort") {
		cfg.Sort, err = cmd.Flags().GetBool("sort")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("show-other") {
		cfg.ShowOther, err = cmd.Flags().GetBool("show-other")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.HTMLReport, err = cmd.Flags().GetBool("html")
	if err != nil {
		return nil, err
	}

	cfg.ExtraMeta, err = cmd.Flags().GetStringArray("meta")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildReport assembles the report options and builds either an
// environment report or a module dependency report.
func buildReport(cfg *config.Config, additional []string, logger *slog.Logger) (*report.Report, error) {
	opts := []report.Option{
		report.WithAdditional(additional),
		report.WithNCol(cfg.NCol),
		report.WithTextWidth(cfg.TextWidth),
		report.WithSort(cfg.Sort),
		report.WithShowOther(cfg.ShowOther),
		report.WithMaxWidth(cfg.MaxWidth),
		report.WithResolver(resolve.NewResolver(
			resolve.NewBuildInfoIndex(),
			resolve.NewFactoryLoader(),
			resolve.WithLogger(logger),
		)),
	}

	if cfg.NoOptional {
		opts = append(opts, report.WithOptional([]string{}))
	} else if cfg.File != nil && len(cfg.File.Optional) > 0 {
		optional := make([]string, 0, len(report.DefaultOptional)+len(cfg.File.Optional))
		optional = append(optional, report.DefaultOptional...)
		optional = append(optional, cfg.File.Optional...)
		opts = append(opts, report.WithOptional(optional))
	}

	if meta, err := extraMeta(cfg); err != nil {
		return nil, err
	} else if len(meta) > 0 {
		opts = append(opts, report.WithExtraMeta(meta))
	}

	if cfg.ReportTarget != "" {
		return report.NewAutoReport(gomodPath(cfg.ReportTarget), opts...)
	}
	return report.New(opts...)
}

// extraMeta parses --meta key=value pairs.
func extraMeta(cfg *config.Config) ([][2]string, error) {
	pairs := make([][2]string, 0, len(cfg.ExtraMeta))
	for _, raw := range cfg.ExtraMeta {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta value %q: expected key=value", raw)
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}

// gomodPath normalizes a --report target into a go.mod path. A
// directory target means the go.mod inside it.
func gomodPath(target string) string {
	if filepath.Base(target) == "go.mod" {
		return target
	}
	return filepath.Join(target, "go.mod")
}

// openOutput returns the report destination: the --output file if set,
// otherwise the command's stdout. The cleanup function is a no-op for
// stdout.
func openOutput(cmd *cobra.Command, cfg *config.Config) (out io.Writer, cleanup func(), err error) {
	if cfg.OutputFile == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(cfg.OutputFile) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newWriter selects the report writer for the configured output format.
func newWriter(out io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	case cfg.HTMLReport:
		return report.NewHTMLWriter(out)
	default:
		return report.NewTextWriter(out)
	}
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
