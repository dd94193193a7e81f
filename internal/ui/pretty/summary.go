package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine formats diagnostic totals as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 documents".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals, stats runner.Stats) string {
	if totals.Issues == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.DocumentsParsed, "document", "documents")))
		if stats.DocumentsErrored > 0 {
			msg += ", " + s.Failure.Render(plural(stats.DocumentsErrored, "document", "documents")+" failed")
		}
		return msg + "\n"
	}

	var levels []string
	if totals.Fatal > 0 {
		levels = append(levels, s.Fatal.Render(plural(totals.Fatal, "fatal", "fatal")))
	}
	if totals.Errors > 0 {
		levels = append(levels, s.Error.Render(plural(totals.Errors, "error", "errors")))
	}
	if totals.Warnings > 0 {
		levels = append(levels, s.Warning.Render(plural(totals.Warnings, "warning", "warnings")))
	}
	if totals.Infos > 0 {
		levels = append(levels, s.Info.Render(plural(totals.Infos, "info", "info")))
	}
	if totals.Debug > 0 {
		levels = append(levels, s.Debug.Render(plural(totals.Debug, "debug", "debug")))
	}

	line := plural(totals.Issues, "issue", "issues")
	if len(levels) > 0 {
		line += " (" + strings.Join(levels, ", ") + ")"
	}
	line += " in " + plural(totals.DocumentsWithIssues, "document", "documents")
	if stats.DocumentsErrored > 0 {
		line += ", " + s.Failure.Render(plural(stats.DocumentsErrored, "document", "documents")+" failed")
	}
	return line + "\n"
}

// FormatSummary formats a run as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals, stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Documents parsed:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.DocumentsParsed)) + "\n")
	if stats.DocumentsErrored > 0 {
		builder.WriteString("  Documents failed:   " +
			s.Failure.Render(strconv.Itoa(stats.DocumentsErrored)) + "\n")
	}
	builder.WriteString("  Static documents:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.StaticDocuments)) + "\n")
	builder.WriteString("  Trees:              " +
		s.SummaryValue.Render(strconv.Itoa(stats.Trees)) + "\n")

	builder.WriteString("\n")

	builder.WriteString("  Total issues:       " +
		s.SummaryValue.Render(strconv.Itoa(totals.Issues)) + "\n")
	rows := []struct {
		label string
		count int
		style func(...string) string
	}{
		{"    Fatal:          ", totals.Fatal, s.Fatal.Render},
		{"    Errors:         ", totals.Errors, s.Error.Render},
		{"    Warnings:       ", totals.Warnings, s.Warning.Render},
		{"    Info:           ", totals.Infos, s.Info.Render},
		{"    Debug:          ", totals.Debug, s.Debug.Render},
	}
	for _, row := range rows {
		if row.count > 0 {
			builder.WriteString(row.label + row.style(strconv.Itoa(row.count)) + "\n")
		}
	}

	builder.WriteString("\n")

	switch {
	case totals.Fatal > 0 || totals.Errors > 0 || stats.DocumentsErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
