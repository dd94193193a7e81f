package analysis

import "github.com/yaklabco/docweave/pkg/ast"

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by issue count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByLevel sorts by message level (most severe first).
	SortByLevel SortField = "level"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByLevel:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeDiagnostics includes the flat diagnostics list.
	IncludeDiagnostics bool

	// IncludeByDocument includes the per-document analysis.
	IncludeByDocument bool

	// IncludeByLevel includes the per-level analysis.
	IncludeByLevel bool

	// SortBy specifies how to sort ByDocument.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// MinLevel drops messages below this level.
	MinLevel ast.MessageLevel
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByDocument:  true,
		IncludeByLevel:     true,
		SortBy:             SortByAlpha,
		MinLevel:           ast.LevelDebug,
	}
}
