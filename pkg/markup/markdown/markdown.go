// Package markdown maps Markdown documents parsed by goldmark onto the
// document tree.
package markdown

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
)

// FormatName is the registered name of the format.
const FormatName = "markdown"

func init() {
	markup.DefaultRegistry.Register(Format())
}

// Format returns the format description for the registry.
func Format() markup.Format {
	return markup.Format{
		Name:           FormatName,
		Description:    "CommonMark with GFM tables, strikethrough, task lists and footnotes",
		FileExtensions: []string{".md", ".markdown", ".mdown"},
		New: func(exts ...markup.Extension) markup.Parser {
			return New(exts...)
		},
	}
}

// Parser implements markup.Parser using goldmark.
type Parser struct {
	md goldmark.Markdown
}

// New creates a Markdown parser. Of the markup extensions only autolinks
// applies to Markdown, where it enables goldmark's linkify extension.
func New(exts ...markup.Extension) *Parser {
	return &Parser{md: newGoldmarkInstance(exts)}
}

// Parse converts raw Markdown into a document.
func (p *Parser) Parse(ctx context.Context, path ast.Path, content []byte) (*ast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	source := copyContent(content)
	gmDoc := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(source)
	return &ast.Document{Path: path, Content: m.mapDocument(gmDoc), Format: FormatName}, nil
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(exts []markup.Extension) goldmark.Markdown {
	extenders := []goldmark.Extender{extension.Table, extension.Strikethrough, extension.TaskList, extension.Footnote}
	for _, ext := range exts {
		if ext.Name == markup.Autolinks.Name {
			extenders = append(extenders, extension.Linkify)
		}
	}
	return goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithParserOptions(parser.WithAttribute()),
	)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
