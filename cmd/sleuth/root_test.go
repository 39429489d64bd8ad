package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "sleuth [module...]" {
			t.Errorf("expected use 'sleuth [module...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has report and format flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"report", "no-opt", "meta", "sort", "show-other", "ncol", "width", "max-width", "json", "markdown", "html", "output", "config"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})

	t.Run("has version subcommand", func(t *testing.T) {
		t.Parallel()
		hasVersion := false
		for _, sub := range cmd.Commands() {
			if sub.Use == "version" {
				hasVersion = true
			}
		}
		if !hasVersion {
			t.Error("expected version subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// TestBuildConfig tests flag-to-config translation.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("no-opt is implied by report", func(t *testing.T) {
		t.Parallel()
		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--report", "./mod"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.NoOptional {
			t.Error("expected NoOptional to be implied by --report")
		}
	})

	t.Run("explicit no-opt=false wins over report", func(t *testing.T) {
		t.Parallel()
		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--report", "./mod", "--no-opt=false"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.NoOptional {
			t.Error("expected explicit --no-opt=false to win")
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()
		cmd := NewRootCmd()
		path := filepath.Join(t.TempDir(), "absent.yaml")
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected an error for a missing explicit config file")
		}
	})

	t.Run("flags win over config file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".sleuth.yaml")
		if err := os.WriteFile(path, []byte("render:\n  ncol: 5\n"), 0o600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--config", path, "--ncol", "2"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.NCol != 2 {
			t.Errorf("got NCol %d, expected the flag value 2", cfg.NCol)
		}
	})

	t.Run("config file fills unset flags", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".sleuth.yaml")
		if err := os.WriteFile(path, []byte("render:\n  ncol: 5\n"), 0o600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.NCol != 5 {
			t.Errorf("got NCol %d, expected the config value 5", cfg.NCol)
		}
	})
}

// TestRootCmdExecute tests end-to-end report generation through the CLI.
func TestRootCmdExecute(t *testing.T) {
	t.Parallel()

	t.Run("text report is rendered", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "Date:") {
			t.Errorf("missing date line in:\n%s", out)
		}
		if !strings.Contains(out, "Environment") {
			t.Errorf("missing environment row in:\n%s", out)
		}
	})

	t.Run("positional modules are included", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"golang.org/x/text"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "golang.org/x/text") {
			t.Errorf("missing requested module in:\n%s", buf.String())
		}
	})

	t.Run("json report is valid", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var dict map[string]string
		if err := json.Unmarshal(buf.Bytes(), &dict); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if dict["Date"] == "" {
			t.Error("expected a Date entry")
		}
	})

	t.Run("module report from go.mod", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		content := `module github.com/example/project

go 1.25.0

require github.com/example/alpha v1.0.0
`
		if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(content), 0o600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--report", dir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "github.com/example/project") {
			t.Errorf("missing module in:\n%s", buf.String())
		}
	})

	t.Run("missing report target is an error", func(t *testing.T) {
		t.Parallel()
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--report", filepath.Join(t.TempDir(), "absent")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for a missing module")
		}
	})

	t.Run("conflicting formats are rejected", func(t *testing.T) {
		t.Parallel()
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--json", "--markdown"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for conflicting formats")
		}
	})

	t.Run("malformed meta pair is rejected", func(t *testing.T) {
		t.Parallel()
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--meta", "novalue"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for a malformed --meta pair")
		}
	})

	t.Run("output file is created", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "reports", "env.txt")
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--output", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "Date:") {
			t.Error("expected the report in the output file")
		}
	})
}
