// Package analysis collects the diagnostic nodes of a resolved document tree
// into a report.
package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/docweave/pkg/ast"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Collect returns the messages of one document in document order.
func Collect(doc *ast.Document) []DiagnosticEntry {
	invalid := ast.FindAll[ast.Invalid](doc.Content)
	return lo.Map(invalid, func(node ast.Invalid, _ int) DiagnosticEntry {
		msg, src := node.Diagnostic(), node.Origin()
		return DiagnosticEntry{
			Path:      doc.Path.String(),
			Level:     msg.Level,
			LevelName: msg.Level.String(),
			Message:   msg.Content,
			Source:    src.Text,
			Line:      src.Line,
			Column:    src.Column,
		}
	})
}

// Analyze walks every document of tree and computes all report views in
// one pass.
func Analyze(tree *ast.DocumentTree, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if tree == nil {
		return report
	}

	var byDocument []DocumentAnalysis
	var all []DiagnosticEntry

	for _, doc := range tree.AllDocuments() {
		report.Totals.Documents++

		entries := lo.Filter(Collect(doc), func(e DiagnosticEntry, _ int) bool {
			return e.Level >= opts.MinLevel
		})
		if len(entries) == 0 {
			continue
		}
		report.Totals.DocumentsWithIssues++

		da := DocumentAnalysis{Path: doc.Path.String(), Format: doc.Format, Worst: ast.LevelDebug}
		for _, e := range entries {
			report.Totals.add(e.Level)
			da.Issues++
			da.Worst = max(da.Worst, e.Level)
			switch {
			case e.Level >= ast.LevelError:
				da.Errors++
			case e.Level == ast.LevelWarning:
				da.Warnings++
			case e.Level == ast.LevelInfo:
				da.Infos++
			}
		}
		byDocument = append(byDocument, da)
		all = append(all, entries...)
	}

	if opts.IncludeDiagnostics {
		report.Diagnostics = all
	}
	if opts.IncludeByDocument {
		sortDocumentAnalysis(byDocument, opts.SortBy, opts.SortDesc)
		report.ByDocument = byDocument
	}
	if opts.IncludeByLevel {
		report.ByLevel = byLevel(all)
	}

	return report
}

func byLevel(entries []DiagnosticEntry) []LevelAnalysis {
	groups := lo.GroupBy(entries, func(e DiagnosticEntry) ast.MessageLevel { return e.Level })

	result := make([]LevelAnalysis, 0, len(groups))
	for level, group := range groups {
		docs := lo.Uniq(lo.Map(group, func(e DiagnosticEntry, _ int) string { return e.Path }))
		slices.Sort(docs)
		result = append(result, LevelAnalysis{
			Level:     level,
			LevelName: level.String(),
			Issues:    len(group),
			Documents: docs,
		})
	}
	slices.SortFunc(result, func(left, right LevelAnalysis) int {
		return cmp.Compare(right.Level, left.Level)
	})
	return result
}

func sortDocumentAnalysis(docs []DocumentAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(docs, func(left, right DocumentAnalysis) int {
		switch sortBy {
		case SortByCount:
			result := cmp.Compare(left.Issues, right.Issues)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		case SortByLevel:
			// Most severe first, then by count.
			result := cmp.Compare(right.Worst, left.Worst)
			if result == 0 {
				result = cmp.Compare(right.Issues, left.Issues)
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		default: // SortByAlpha
			return cmp.Compare(left.Path, right.Path)
		}
	})
}
