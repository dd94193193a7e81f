package runner

import "github.com/yaklabco/docweave/pkg/ast"

// FileOutcome records what happened to one markup file.
type FileOutcome struct {
	// Path is the document path inside the tree.
	Path ast.Path

	// File is the file system path that was read.
	File string

	// Format is the name of the markup format used.
	Format string

	// Document is the parsed document. Nil if Error is set.
	Document *ast.Document

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// DocumentsDiscovered is the number of markup files found.
	DocumentsDiscovered int

	// DocumentsParsed is the number of documents successfully parsed.
	DocumentsParsed int

	// DocumentsErrored is the number of files that could not be parsed.
	DocumentsErrored int

	// StaticDocuments is the number of non-markup files found.
	StaticDocuments int

	// Trees is the number of trees in the result, the root included.
	Trees int

	// DocumentsByFormat counts parsed documents per markup format.
	DocumentsByFormat map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Root is the absolute file system directory of the tree root.
	Root string

	// Tree is the parsed, unresolved document tree.
	Tree *ast.DocumentTree

	// Files contains the outcome for each markup file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Errors returns the errors of files that could not be parsed.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.DocumentsErrored++
		return
	}

	r.Stats.DocumentsParsed++
	if r.Stats.DocumentsByFormat == nil {
		r.Stats.DocumentsByFormat = make(map[string]int)
	}
	r.Stats.DocumentsByFormat[outcome.Format]++
}
