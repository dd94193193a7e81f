// Package rst parses a subset of reStructuredText.
//
// The grammar is built on the parser combinators of pkg/parse and plugs
// into the recursive parsing protocol of pkg/markup. Sections, transitions,
// bullet and enumerated lists, block quotes, literal blocks, footnotes,
// citations, hyperlink targets and a handful of directives are supported,
// as are the common inline constructs and roles.
package rst

import (
	"context"
	"strings"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
	"github.com/yaklabco/docweave/pkg/parse"
)

// FormatName is the registered name of the format.
const FormatName = "rst"

const tabWidth = 8

func init() {
	markup.DefaultRegistry.Register(Format())
}

// Format returns the format description for the registry.
func Format() markup.Format {
	return markup.Format{
		Name:           FormatName,
		Description:    "reStructuredText",
		FileExtensions: []string{".rst", ".rest"},
		New: func(exts ...markup.Extension) markup.Parser {
			return New(exts...)
		},
	}
}

// Grammar returns the reStructuredText grammar.
func Grammar() markup.Grammar {
	return markup.Grammar{
		Spans:          spanParsers,
		Blocks:         blockParsers,
		FallbackBlocks: fallbackBlocks,
		Separator:      parse.BlankLine,
		Escape:         escape,
		Retract:        retract,
	}
}

// Parser parses reStructuredText documents.
type Parser struct {
	grammar *markup.GrammarParser
}

// New returns a parser with the given extensions enabled.
func New(exts ...markup.Extension) *Parser {
	return &Parser{grammar: markup.NewGrammarParser(FormatName, Grammar(), exts...)}
}

// Parse implements markup.Parser.
func (p *Parser) Parse(ctx context.Context, path ast.Path, content []byte) (*ast.Document, error) {
	return p.grammar.Parse(ctx, path, []byte(expandTabs(string(content))))
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s))
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			buf.WriteRune(r)
			col = 0
		default:
			buf.WriteRune(r)
			col++
		}
	}
	return buf.String()
}

// escape resolves the character after a backslash. An escaped space or
// line break disappears.
func escape(ctx parse.Context) parse.Result[string] {
	if ctx.AtEnd() {
		return parse.Failure[string](parse.Expected("escaped character"), ctx)
	}
	r := ctx.Char()
	width := len(string(r))
	if r == ' ' || r == '\n' {
		return parse.Success("", ctx.Consume(width))
	}
	return parse.Success(ctx.Capture(width), ctx.Consume(width))
}
