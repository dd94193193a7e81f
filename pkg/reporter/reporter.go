// Package reporter prints the messages left in a resolved document tree.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/runner"
	"github.com/yaklabco/docweave/pkg/transform"
)

// Reporter formats and writes the outcome of a pipeline run.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of messages reported and any write errors.
	Report(ctx context.Context, result *transform.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// parts returns the report and run of result, never nil.
func parts(result *transform.Result) (*analysis.Report, *runner.Result) {
	report := &analysis.Report{Version: analysis.ReportVersion}
	run := &runner.Result{}
	if result == nil {
		return report, run
	}
	if result.Report != nil {
		report = result.Report
	}
	if result.Run != nil {
		run = result.Run
	}
	return report, run
}
