package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/docweave/internal/ui/pretty"
	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/transform"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *transform.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report, run := parts(result)

	for _, file := range run.Files {
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatParseError(file.Path.String(), file.Error))
		}
	}

	if len(run.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No documents to check."))
		}
		return 0, nil
	}

	if r.opts.GroupByDocument {
		r.reportGrouped(report.Diagnostics)
	} else {
		for _, entry := range report.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(entry, r.opts.ShowContext))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(report.Totals, run.Stats))
	}

	return report.Totals.Issues, nil
}

// reportGrouped writes messages under one header per document.
func (r *TextReporter) reportGrouped(entries []analysis.DiagnosticEntry) {
	for start := 0; start < len(entries); {
		end := start + 1
		for end < len(entries) && entries[end].Path == entries[start].Path {
			end++
		}

		fmt.Fprintln(r.bw, r.styles.FormatDocumentHeader(entries[start].Path, end-start))
		for _, entry := range entries[start:end] {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(entry, r.opts.ShowContext))
		}
		fmt.Fprintln(r.bw)

		start = end
	}
}
