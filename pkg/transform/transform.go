package transform

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/docweave/internal/logging"
	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/cursor"
	"github.com/yaklabco/docweave/pkg/link"
	"github.com/yaklabco/docweave/pkg/render"
	"github.com/yaklabco/docweave/pkg/runner"
)

// ErrNoDocuments is returned when the input contains no markup document.
var ErrNoDocuments = errors.New("no markup documents found")

// Result is the outcome of a pipeline run.
type Result struct {
	// Run is the result of discovery and parsing.
	Run *runner.Result

	// Tree is the resolved document tree.
	Tree *ast.DocumentTree

	// Report summarizes the diagnostics left in Tree.
	Report *analysis.Report

	// Written lists the output files, rendered documents first, then copied
	// static documents. Files that were already up to date are included.
	Written []string
}

// Transform parses, resolves, analyzes and optionally renders the input
// described by opts.
//
// Files that could not be parsed do not stop the run; they are reported in
// Result.Run. Errors are returned for configuration, I/O and cancellation
// problems only.
func Transform(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	run, err := runner.New().Run(ctx, opts.Runner)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed documents",
		logging.FieldDocuments, run.Stats.DocumentsParsed,
		logging.FieldTrees, run.Stats.Trees)

	if run.Stats.DocumentsDiscovered == 0 {
		return &Result{Run: run}, ErrNoDocuments
	}

	tree, err := link.ResolveTree(ctx, cursor.NewRoot(run.Tree))
	if err != nil {
		return nil, err
	}

	report := analysis.Analyze(tree, opts.Analysis)
	logger.Debug("resolved links", logging.FieldMessages, report.Totals.Issues)

	result := &Result{Run: run, Tree: tree, Report: report}
	if !opts.Render {
		return result, nil
	}

	renderOpts, err := render.OptionsFromConfig(opts.config())
	if err != nil {
		return result, fmt.Errorf("render options: %w", err)
	}
	renderOpts.Documents = render.DocumentSet(tree)

	renderer, err := render.New(opts.config().Format, renderOpts)
	if err != nil {
		return result, err
	}

	if opts.Output == "" {
		if err := writeStdout(opts.Stdout, renderer, tree); err != nil {
			return result, err
		}
		return result, nil
	}

	w := &outputWriter{
		dir:      opts.Output,
		format:   opts.config().Format,
		renderer: renderer,
		jobs:     opts.Runner.Jobs,
	}
	written, err := w.write(ctx, run.Root, tree)
	result.Written = written
	logger.Debug("wrote output",
		logging.FieldOutput, opts.Output,
		logging.FieldWritten, len(written))
	if err != nil {
		return result, err
	}
	return result, nil
}
