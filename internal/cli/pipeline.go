package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docweave/internal/configloader"
	"github.com/yaklabco/docweave/internal/logging"
	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/reporter"
	"github.com/yaklabco/docweave/pkg/runner"
	"github.com/yaklabco/docweave/pkg/transform"
)

// errConfig marks configuration problems.
var errConfig = errors.New("failed to load configuration")

// pipelineFlags holds the flags shared by transform and check. Flags that
// map onto config fields are only applied when set on the command line.
type pipelineFlags struct {
	format         string
	output         string
	report         string
	messageLevel   string
	failLevel      string
	extensions     []string
	ignore         []string
	followSymlinks bool
	noContext      bool
	compact        bool
}

func addPipelineFlags(cmd *cobra.Command, cfg *config.Config, flags *pipelineFlags) {
	cmd.Flags().StringVar(&flags.report, "report", "text", "diagnostic report format: text, table, json, summary")
	cmd.Flags().StringVar(&flags.messageLevel, "message-level", "warning",
		"lowest message level shown: debug, info, warning, error, fatal")
	cmd.Flags().StringSliceVar(&flags.extensions, "extension", nil, "markup extensions to enable")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source markup in the report")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}

// applyFlags copies explicitly set flags into cfg.
func (f *pipelineFlags) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = config.RenderFormat(f.format)
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("report") {
		cfg.Report = config.ReportFormat(f.report)
	}
	if changed("message-level") {
		cfg.MessageLevel = f.messageLevel
	}
	if changed("fail-level") {
		cfg.FailLevel = f.failLevel
	}
	if changed("extension") {
		cfg.Extensions = f.extensions
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
}

// pipeline is a loaded configuration ready to run.
type pipeline struct {
	cfg          *config.Config
	workDir      string
	messageLevel ast.MessageLevel
	failLevel    ast.MessageLevel
}

// loadPipeline merges the configuration sources for cmd.
func loadPipeline(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*pipeline, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		logger.Debug("configuration rejected", logging.FieldConfig, configPath, logging.FieldError, err)
		return nil, errors.Join(errConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldMarkup, cfg.Markup,
		logging.FieldJobs, cfg.Jobs,
	)

	// Levels were validated by the loader.
	messageLevel, err := ast.ParseMessageLevel(cfg.MessageLevel)
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}
	failLevel, err := ast.ParseMessageLevel(cfg.FailLevel)
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	return &pipeline{cfg: cfg, workDir: workDir, messageLevel: messageLevel, failLevel: failLevel}, nil
}

// options builds the transform options for the input named by args.
func (p *pipeline) options(args []string, flags *pipelineFlags) transform.Options {
	var input string
	if len(args) > 0 {
		input = args[0]
	}

	analysisOpts := analysis.DefaultOptions()
	analysisOpts.MinLevel = p.messageLevel

	return transform.Options{
		Runner: runner.Options{
			Input:          input,
			WorkingDir:     p.workDir,
			ExcludeGlobs:   p.cfg.Ignore,
			FollowSymlinks: flags.followSymlinks,
			Jobs:           p.cfg.Jobs,
			Config:         p.cfg,
		},
		Output:   p.cfg.Output,
		Analysis: analysisOpts,
	}
}

// reporter creates the reporter selected by the configuration.
func (p *pipeline) reporter(cmd *cobra.Command, flags *pipelineFlags, w io.Writer) (reporter.Reporter, error) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(p.cfg.Report))
	if err != nil {
		return nil, fmt.Errorf("invalid report format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          w,
		Format:          format,
		Color:           colorMode,
		ShowContext:     !flags.noContext,
		ShowSummary:     true,
		GroupByDocument: true,
		Compact:         flags.compact,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// commandContext returns the command context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}
