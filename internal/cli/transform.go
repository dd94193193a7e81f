package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docweave/internal/logging"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/transform"
)

func newTransformCommand() *cobra.Command {
	var cfg config.Config
	flags := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "transform [input]",
		Short: "Render a document tree",
		Long:  transformLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args, &cfg, flags)
		},
	}

	addPipelineFlags(cmd, &cfg, flags)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "html", "render format: html, ast, dump")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"directory to write rendered documents to (default: standard output)")

	return cmd
}

const transformLongDescription = `Parse a directory of markup documents, resolve the links between them and
render every document.

The input defaults to the current directory. With --output each document is
written next to its position in the tree, with the extension of the render
format, and static files such as images are copied along. Without --output
the rendered documents are written to standard output.

Messages left in the tree are rendered inline and reported on standard error.

Examples:
  docweave transform docs -o site        # Render docs/ to site/ as HTML
  docweave transform -f ast README.md    # Print the tree of one document
  docweave transform --message-level error docs -o site`

func runTransform(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *pipelineFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	flags.applyFlags(cmd, cliCfg)

	p, err := loadPipeline(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	opts := p.options(args, flags)
	opts.Render = true
	opts.Stdout = cmd.OutOrStdout()

	logger.Debug("starting transform",
		logging.FieldInput, opts.Runner.Input,
		logging.FieldWorkingDir, opts.Runner.WorkingDir,
		logging.FieldOutput, opts.Output,
	)

	result, err := transform.Transform(ctx, opts)
	if err != nil {
		if errors.Is(err, transform.ErrNoDocuments) {
			return fmt.Errorf("%w in %q", err, inputName(args))
		}
		return fmt.Errorf("transform failed: %w", err)
	}

	rep, err := p.reporter(cmd, flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if opts.Output != "" {
		logger.Info("rendered documents",
			logging.FieldOutput, opts.Output,
			logging.FieldWritten, len(result.Written),
		)
	}

	if result.Run.Stats.DocumentsErrored > 0 {
		return ErrDocumentsFailed
	}
	return nil
}

func inputName(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
