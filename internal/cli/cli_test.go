package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/docweave/internal/cli"
	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/runner"
	"github.com/yaklabco/docweave/pkg/transform"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "docweave" {
		t.Errorf("expected Use to be 'docweave', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"transform", "check", "formats", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	shared := []string{"report", "message-level", "extension", "ignore", "follow-symlinks", "jobs", "no-context", "compact"}

	tests := []struct {
		command string
		flags   []string
		absent  []string
	}{
		{command: "transform", flags: append([]string{"format", "output"}, shared...), absent: []string{"fail-level"}},
		{command: "check", flags: append([]string{"fail-level"}, shared...), absent: []string{"format", "output"}},
		{command: "init", flags: []string{"force", "full", "output"}},
		{command: "formats", flags: []string{"format"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			sub, _, err := cmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("%s command not found: %v", tt.command, err)
			}

			for _, name := range tt.flags {
				if sub.Flags().Lookup(name) == nil {
					t.Errorf("expected flag --%s on %s", name, tt.command)
				}
			}
			for _, name := range tt.absent {
				if sub.Flags().Lookup(name) != nil {
					t.Errorf("unexpected flag --%s on %s", name, tt.command)
				}
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}

	if got := cmd.PersistentFlags().Lookup("color").DefValue; got != "auto" {
		t.Errorf("expected --color default 'auto', got %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"docweave", "test-version", "test-commit", "test-date"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected version output to contain %q, got %q", want, output)
		}
	}
}

func TestVersionCommandShort(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version", "--short"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if got := buf.String(); got != "test-version\n" {
		t.Errorf("expected bare version, got %q", got)
	}
}

func TestRootHelpListsFormats(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Commands:", "Markup Formats:", "markdown", ".rst .rest", "--config"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected help to contain %q, got:\n%s", want, output)
		}
	}
}

func TestSubcommandHelpOmitsFormats(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"check", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "Markup Formats:") {
		t.Errorf("subcommand help should not list formats, got:\n%s", output)
	}
	if !strings.Contains(output, "--fail-level") {
		t.Errorf("expected check help to list --fail-level, got:\n%s", output)
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	result := func(totals analysis.Totals, errored int) *transform.Result {
		return &transform.Result{
			Run:    &runner.Result{Stats: runner.Stats{DocumentsErrored: errored}},
			Report: &analysis.Report{Totals: totals},
		}
	}

	tests := []struct {
		name      string
		result    *transform.Result
		failLevel ast.MessageLevel
		want      int
	}{
		{name: "nil result", result: nil, failLevel: ast.LevelError, want: cli.ExitSuccess},
		{name: "clean", result: result(analysis.Totals{}, 0), failLevel: ast.LevelError, want: cli.ExitSuccess},
		{name: "error at error level", result: result(analysis.Totals{Issues: 1, Errors: 1}, 0), failLevel: ast.LevelError, want: cli.ExitMessagesFound},
		{name: "warning below error level", result: result(analysis.Totals{Issues: 1, Warnings: 1}, 0), failLevel: ast.LevelError, want: cli.ExitSuccess},
		{name: "warning at warning level", result: result(analysis.Totals{Issues: 1, Warnings: 1}, 0), failLevel: ast.LevelWarning, want: cli.ExitMessagesFound},
		{name: "fatal at error level", result: result(analysis.Totals{Issues: 1, Fatal: 1}, 0), failLevel: ast.LevelError, want: cli.ExitMessagesFound},
		{name: "failed document", result: result(analysis.Totals{}, 1), failLevel: ast.LevelError, want: cli.ExitDocumentsFailed},
		{name: "messages win over failed documents", result: result(analysis.Totals{Issues: 1, Errors: 1}, 1), failLevel: ast.LevelError, want: cli.ExitMessagesFound},
		{name: "no report", result: &transform.Result{Run: &runner.Result{}}, failLevel: ast.LevelDebug, want: cli.ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromResult(tt.result, tt.failLevel); got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		want   int
		signal bool
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "messages", err: cli.ErrMessagesFound, want: cli.ExitMessagesFound, signal: true},
		{name: "wrapped documents", err: fmt.Errorf("run: %w", cli.ErrDocumentsFailed), want: cli.ExitDocumentsFailed, signal: true},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromError(tt.err); got != tt.want {
				t.Errorf("ExitCodeFromError() = %d, want %d", got, tt.want)
			}
			if got := cli.IsSignal(tt.err); got != tt.signal {
				t.Errorf("IsSignal() = %v, want %v", got, tt.signal)
			}
		})
	}
}
