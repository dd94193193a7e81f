package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docweave/internal/logging"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/transform"
)

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "check [input]",
		Short: "Report unresolved references and other messages",
		Long:  checkLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addPipelineFlags(cmd, &cfg, flags)
	cmd.Flags().StringVar(&flags.failLevel, "fail-level", "error",
		"lowest message level that fails the check: debug, info, warning, error, fatal")

	return cmd
}

const checkLongDescription = `Parse a directory of markup documents and resolve the links between them
without rendering anything, then report every message left in the tree.

The command exits with status 1 when a message at or above the fail level
remains, and with status 2 when a markup file could not be read.

Examples:
  docweave check                          # Check the current directory
  docweave check docs --fail-level warning
  docweave check --report json docs       # Machine readable report`

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *pipelineFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	flags.applyFlags(cmd, cliCfg)

	p, err := loadPipeline(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	opts := p.options(args, flags)
	opts.Analysis.MinLevel = min(p.messageLevel, p.failLevel)

	logger.Debug("starting check",
		logging.FieldInput, opts.Runner.Input,
		logging.FieldWorkingDir, opts.Runner.WorkingDir,
		logging.FieldLevel, p.failLevel,
	)

	result, err := transform.Transform(ctx, opts)
	if err != nil && !errors.Is(err, transform.ErrNoDocuments) {
		return fmt.Errorf("check failed: %w", err)
	}

	rep, err := p.reporter(cmd, flags, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return signalFor(ExitCodeFromResult(result, p.failLevel))
}
