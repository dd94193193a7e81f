// Package markup connects concrete markup grammars to the document model.
//
// A grammar contributes span and block parsers built on pkg/parse. The
// RootParser assembles them, together with any enabled extensions, into
// dispatch tables and gives every parser access to the complete grammar for
// nested content through RecursiveParsers. Formats that are implemented on
// other parsing libraries only need to implement Parser.
package markup

import (
	"context"
	"errors"

	"github.com/yaklabco/docweave/pkg/ast"
)

// Parser parses markup content into a document.
//
// Implementations must be deterministic, safe for concurrent use and free
// of I/O: the path only names the document. Malformed input never produces
// an error; it is represented by diagnostic nodes in the returned tree.
type Parser interface {
	Parse(ctx context.Context, path ast.Path, content []byte) (*ast.Document, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(ctx context.Context, path ast.Path, content []byte) (*ast.Document, error)

// Parse calls f.
func (f ParserFunc) Parse(ctx context.Context, path ast.Path, content []byte) (*ast.Document, error) {
	return f(ctx, path, content)
}

// Format describes a markup format.
type Format struct {
	// Name is the identifier used in configuration, e.g. "rst".
	Name string

	// Description is a short human readable description.
	Description string

	// FileExtensions lists the file extensions, with leading dot, that are
	// parsed with this format by default.
	FileExtensions []string

	// New creates a parser with the given extensions enabled.
	New func(exts ...Extension) Parser
}

// Sentinel errors for format lookup.
var (
	ErrUnknownFormat    = errors.New("unknown markup format")
	ErrUnknownExtension = errors.New("unknown markup extension")
	ErrNoParser         = errors.New("no markup format for file")
)
