package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // DOCUMENT, LOC, LEVEL, MESSAGE
	minDocumentWidth = 20
	minLocWidth      = 7
	levelWidth       = 7
	minMessageWidth  = 35
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	Document string
	Location string
	Level    ast.MessageLevel
	Message  string
}

// EntryToTableRow converts a diagnostic entry to a table row.
func EntryToTableRow(entry analysis.DiagnosticEntry) TableRow {
	loc := ""
	if entry.Line > 0 {
		loc = fmt.Sprintf("%d:%d", entry.Line, entry.Column)
	}
	return TableRow{
		Document: entry.Path,
		Location: loc,
		Level:    entry.Level,
		Message:  entry.Message,
	}
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	document int
	loc      int
	message  int
}

// FormatTable formats diagnostics as a table, one group of rows per
// document. Entries of the same document must be adjacent.
func (t *TableFormatter) FormatTable(entries []analysis.DiagnosticEntry) string {
	groups := groupRows(entries)
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	for idx, group := range groups {
		if idx > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

func groupRows(entries []analysis.DiagnosticEntry) [][]TableRow {
	var groups [][]TableRow
	for _, entry := range entries {
		row := EntryToTableRow(entry)
		if n := len(groups); n > 0 && groups[n-1][0].Document == row.Document {
			groups[n-1] = append(groups[n-1], row)
			continue
		}
		groups = append(groups, []TableRow{row})
	}
	return groups
}

// calculateColumnWidths sizes columns to their content, shrinking the
// message and then the document column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		document: minDocumentWidth,
		loc:      minLocWidth,
		message:  minMessageWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.document = max(widths.document, len(row.Document))
			widths.loc = max(widths.loc, len(row.Location))
			widths.message = max(widths.message, len(row.Message))
		}
	}

	if total := totalWidth(widths); total > t.termWidth {
		widths.message = max(minMessageWidth, widths.message-(total-t.termWidth))
		if total = totalWidth(widths); total > t.termWidth {
			widths.document = max(minDocumentWidth, widths.document-(total-t.termWidth))
		}
	}

	return widths
}

func totalWidth(widths columnWidths) int {
	return widths.document + widths.loc + levelWidth + widths.message + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.document, "DOCUMENT",
		widths.loc, "LOC",
		levelWidth, "LEVEL",
		widths.message, "MESSAGE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.document, truncatePath(row.Document, widths.document),
		widths.loc, truncateString(row.Location, widths.loc),
		levelWidth, row.Level.String(),
		widths.message, truncateString(row.Message, widths.message),
	)
	return t.rowStyle(row.Level).Render(content)
}

func (t *TableFormatter) rowStyle(level ast.MessageLevel) lipgloss.Style {
	switch {
	case level >= ast.LevelError:
		return t.styles.TableErrorRow
	case level == ast.LevelWarning:
		return t.styles.TableWarnRow
	case level == ast.LevelInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Rows are ordered by document, then position")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableInfoRow.Render(" info "),
	))
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(totals analysis.Totals, stats runner.Stats) string {
	parts := []string{plural(stats.DocumentsParsed, "document", "documents") + " checked"}

	if n := totals.Fatal + totals.Errors; n > 0 {
		parts = append(parts, t.styles.Error.Render(plural(n, "error", "errors")))
	}
	if totals.Warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(plural(totals.Warnings, "warning", "warnings")))
	}
	if totals.Infos > 0 {
		parts = append(parts, t.styles.Info.Render(plural(totals.Infos, "info", "info")))
	}
	if stats.DocumentsErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(plural(stats.DocumentsErrored, "document", "documents")+" failed"))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncatePath truncates a path, preserving the end (the document name).
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
