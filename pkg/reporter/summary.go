package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/docweave/internal/ui/pretty"
	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/transform"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	levelColWidth     = 12 // Width of the level column.
	documentColWidth  = 60 // Width of the document path column.
	numColWidth       = 7  // Width of numeric columns.
	warnColWidth      = 8  // Width of warnings column.
	maxDocumentLength = 58 // Maximum characters for a path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryReporter formats results as aggregated tables per level and per
// document.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *transform.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report, run := parts(result)

	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No issues found"))
	} else {
		r.renderLevelTable(report.ByLevel)
		fmt.Fprintln(r.bw)
		r.renderDocumentTable(report.ByDocument)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(report.Totals, run.Stats))
	}

	return report.Totals.Issues, nil
}

func (r *SummaryReporter) separator() {
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryReporter) renderLevelTable(levels []analysis.LevelAnalysis) {
	if len(levels) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Levels Summary"))
	r.separator()
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Level", levelColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Documents", numColWidth+3)),
	)
	r.separator()

	for _, level := range levels {
		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.Level(level.Level).Render(padRight(level.LevelName, levelColWidth)),
			padLeft(strconv.Itoa(level.Issues), numColWidth),
			padLeft(strconv.Itoa(len(level.Documents)), numColWidth+3),
		)
	}
}

func (r *SummaryReporter) renderDocumentTable(docs []analysis.DocumentAnalysis) {
	if len(docs) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Documents Summary"))
	r.separator()
	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Document", documentColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator()

	for _, doc := range docs {
		path := doc.Path
		if len(path) > maxDocumentLength {
			path = "…" + path[len(path)-(maxDocumentLength-1):]
		}

		padded := padRight(path, documentColWidth)
		var styled string
		switch {
		case doc.Worst >= ast.LevelError:
			styled = r.styles.TableErrorRow.Render(padded)
		case doc.Worst == ast.LevelWarning:
			styled = r.styles.TableWarnRow.Render(padded)
		default:
			styled = padded
		}

		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			styled,
			padLeft(strconv.Itoa(doc.Issues), numColWidth),
			padLeft(strconv.Itoa(doc.Errors), numColWidth),
			padLeft(strconv.Itoa(doc.Warnings), warnColWidth),
		)
	}
}
