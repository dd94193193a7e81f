package analysis

import (
	"time"

	"github.com/yaklabco/docweave/pkg/ast"
)

// Report contains pre-computed views of the messages in a resolved tree.
// Computed once by Analyze(), used by all reporters.
type Report struct {
	// Diagnostics is the flat list for detailed output, in document order.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByDocument groups messages by document path.
	ByDocument []DocumentAnalysis `json:"byDocument,omitempty"`

	// ByLevel groups messages by level, most severe first.
	ByLevel []LevelAnalysis `json:"byLevel,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one message found in the tree.
type DiagnosticEntry struct {
	Path    string           `json:"path"`
	Level   ast.MessageLevel `json:"-"`
	Message string           `json:"message"`
	Source  string           `json:"source,omitempty"`
	Line    int              `json:"line,omitempty"`
	Column  int              `json:"column,omitempty"`

	// LevelName is the level as text, for serialized reports.
	LevelName string `json:"level"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Documents           int `json:"documents"`
	DocumentsWithIssues int `json:"documentsWithIssues"`
	Issues              int `json:"totalIssues"`
	Fatal               int `json:"fatal"`
	Errors              int `json:"errors"`
	Warnings            int `json:"warnings"`
	Infos               int `json:"infos"`
	Debug               int `json:"debug"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors or fatal messages.
func (t Totals) HasErrors() bool {
	return t.Errors+t.Fatal > 0
}

// AtLeast returns the number of messages at or above level.
func (t Totals) AtLeast(level ast.MessageLevel) int {
	counts := []int{t.Debug, t.Infos, t.Warnings, t.Errors, t.Fatal}
	n := 0
	for l := max(level, ast.LevelDebug); l <= ast.LevelFatal; l++ {
		n += counts[l]
	}
	return n
}

func (t *Totals) add(level ast.MessageLevel) {
	t.Issues++
	switch level {
	case ast.LevelDebug:
		t.Debug++
	case ast.LevelInfo:
		t.Infos++
	case ast.LevelWarning:
		t.Warnings++
	case ast.LevelError:
		t.Errors++
	default:
		t.Fatal++
	}
}

// DocumentAnalysis contains aggregated data for a single document.
type DocumentAnalysis struct {
	Path     string `json:"path"`
	Format   string `json:"format,omitempty"`
	Issues   int    `json:"issues"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Infos    int    `json:"infos"`

	// Worst is the most severe level among the document's messages.
	Worst ast.MessageLevel `json:"-"`
}

// LevelAnalysis contains aggregated data for a single message level.
type LevelAnalysis struct {
	Level     ast.MessageLevel `json:"-"`
	LevelName string           `json:"level"`
	Issues    int              `json:"issues"`
	Documents []string         `json:"documents,omitempty"`
}
