package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docweave/internal/ui/pretty"
	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{Documents: 10, DocumentsWithIssues: 3, Issues: 15, Errors: 5, Warnings: 10}
	stats := runner.Stats{DocumentsParsed: 10, StaticDocuments: 2, Trees: 4}

	result := styles.FormatSummary(totals, stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Documents parsed:   10")
	assert.Contains(t, result, "Static documents:   2")
	assert.Contains(t, result, "Trees:              4")
	assert.Contains(t, result, "Total issues:       15")
	assert.Contains(t, result, "Errors:         5")
	assert.Contains(t, result, "Warnings:       10")
	assert.NotContains(t, result, "Info:")
	assert.NotContains(t, result, "Documents failed:")
	assert.Contains(t, result, "Check failed with errors")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		totals analysis.Totals
		stats  runner.Stats
		want   string
	}{
		{name: "clean", want: "Check passed"},
		{name: "warnings", totals: analysis.Totals{Issues: 1, Warnings: 1}, want: "Check completed with warnings"},
		{name: "fatal", totals: analysis.Totals{Issues: 1, Fatal: 1}, want: "Check failed with errors"},
		{name: "parse failure", stats: runner.Stats{DocumentsErrored: 1}, want: "Check failed with errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, styles.FormatSummary(tt.totals, tt.stats), tt.want)
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		totals analysis.Totals
		stats  runner.Stats
		want   string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{DocumentsParsed: 5},
			want:  "No issues found (5 documents checked)\n",
		},
		{
			name:  "no issues one document",
			stats: runner.Stats{DocumentsParsed: 1, DocumentsErrored: 1},
			want:  "No issues found (1 document checked), 1 document failed\n",
		},
		{
			name:   "single issue",
			totals: analysis.Totals{Issues: 1, Errors: 1, DocumentsWithIssues: 1},
			want:   "1 issue (1 error) in 1 document\n",
		},
		{
			name:   "mixed",
			totals: analysis.Totals{Issues: 4, Errors: 2, Warnings: 1, Infos: 1, DocumentsWithIssues: 2},
			want:   "4 issues (2 errors, 1 warning, 1 info) in 2 documents\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.totals, tt.stats))
		})
	}
}

func TestTableFormatter(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 0)

	entries := []analysis.DiagnosticEntry{
		{Path: "/a.rst", Level: ast.LevelError, Message: "unresolved link id reference: x", Line: 3, Column: 1},
		{Path: "/a.rst", Level: ast.LevelWarning, Message: "duplicate target id: y", Line: 7, Column: 2},
		{Path: "/b.md", Level: ast.LevelInfo, Message: "note"},
	}

	table := formatter.FormatTable(entries)
	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")

	// header, heavy rule, two rows, light rule, one row, heavy rule, legend
	if assert.Len(t, lines, 8) {
		assert.Contains(t, lines[0], "DOCUMENT")
		assert.Contains(t, lines[0], "MESSAGE")
		assert.True(t, strings.HasPrefix(lines[1], "===="))
		assert.Contains(t, lines[2], "3:1")
		assert.Contains(t, lines[2], "error")
		assert.Contains(t, lines[3], "duplicate target id: y")
		assert.True(t, strings.HasPrefix(lines[4], "----"))
		assert.Contains(t, lines[5], "/b.md")
		assert.Contains(t, lines[7], "Rows are ordered")
	}

	assert.Empty(t, formatter.FormatTable(nil))
}

func TestTableFormatter_Summary(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 80)

	got := formatter.FormatTableSummary(
		analysis.Totals{Issues: 3, Fatal: 1, Errors: 1, Warnings: 1},
		runner.Stats{DocumentsParsed: 4})

	assert.Equal(t, " 4 documents checked | 2 errors | 1 warning", got)
}
