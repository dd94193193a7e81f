package markup

import (
	"context"
	"strings"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/parse"
)

// MaxNestLevel limits recursive parsing. Span content nested deeper is kept
// as plain text and block content as a single paragraph.
const MaxNestLevel = 12

// RecursiveSpanParsers gives span parsers access to the complete span
// grammar, extensions included.
type RecursiveSpanParsers interface {
	// RecursiveSpans parses the text produced by p as spans one nest level
	// deeper.
	RecursiveSpans(p parse.Parser[string]) parse.Parser[[]ast.Span]

	// SpansOf parses text as spans one nest level deeper than ctx.
	SpansOf(ctx parse.Context, text string) []ast.Span

	// EscapedText reads the text of d with escape sequences resolved.
	EscapedText(d parse.DelimitedText) parse.Parser[string]

	// EscapedChar parses one escape sequence after its backslash.
	EscapedChar() parse.Parser[string]
}

// RecursiveParsers adds recursive block parsing to RecursiveSpanParsers.
type RecursiveParsers interface {
	RecursiveSpanParsers

	// RecursiveBlocks parses the text produced by p as blocks one nest
	// level deeper.
	RecursiveBlocks(p parse.Parser[string]) parse.Parser[[]ast.Block]

	// BlocksOf parses text as blocks one nest level deeper than ctx.
	BlocksOf(ctx parse.Context, text string) []ast.Block
}

// Grammar is the parser set of one markup format.
type Grammar struct {
	// Spans returns the prefixed span parsers.
	Spans func(RecursiveSpanParsers) []parse.PrefixedParser[ast.Span]

	// Blocks returns the prefixed block parsers.
	Blocks func(RecursiveParsers) []parse.PrefixedParser[ast.Block]

	// FallbackBlocks returns the parsers tried when no prefixed block
	// parser applies, in order. The last one should always succeed.
	FallbackBlocks func(RecursiveParsers) []parse.Parser[ast.Block]

	// Separator is skipped before every block, e.g. blank lines.
	Separator parse.Parser[string]

	// Escape parses the character after a backslash. Nil disables escapes.
	Escape parse.Parser[string]

	// Retract reports how many bytes of preceding text a span claims.
	Retract func(ast.Span) int
}

// Extension adds parsers to a grammar. Extension parsers take precedence
// over the parsers of the grammar for the same start character.
type Extension struct {
	Name        string
	Description string
	Spans       func(RecursiveSpanParsers) []parse.PrefixedParser[ast.Span]
	Blocks      func(RecursiveParsers) []parse.PrefixedParser[ast.Block]
}

// RootParser assembles a grammar and its extensions.
type RootParser struct {
	spans  parse.Parser[[]ast.Span]
	block  parse.Parser[ast.Block]
	sep    parse.Parser[string]
	escape parse.Parser[string]
}

// NewRootParser builds the dispatch tables of g and exts. Extension tables
// are merged before the grammar's own tables.
func NewRootParser(g Grammar, exts ...Extension) *RootParser {
	rp := &RootParser{sep: g.Separator, escape: g.Escape}

	var spanTables []parse.DispatchTable[ast.Span]
	var blockTables []parse.DispatchTable[ast.Block]
	for _, ext := range exts {
		if ext.Spans != nil {
			spanTables = append(spanTables, parse.NewDispatchTable(ext.Spans(rp)...))
		}
		if ext.Blocks != nil {
			blockTables = append(blockTables, parse.NewDispatchTable(ext.Blocks(rp)...))
		}
	}
	if g.Spans != nil {
		spanTables = append(spanTables, parse.NewDispatchTable(g.Spans(rp)...))
	}
	if g.Blocks != nil {
		blockTables = append(blockTables, parse.NewDispatchTable(g.Blocks(rp)...))
	}

	inline := parse.NewInline(textSpan, parse.MergeTables(spanTables...))
	if g.Escape != nil {
		inline = inline.WithEscape(g.Escape)
	}
	if g.Retract != nil {
		inline = inline.WithRetract(g.Retract)
	}
	rp.spans = inline.Parser()

	var fallbacks []parse.Parser[ast.Block]
	if g.FallbackBlocks != nil {
		fallbacks = g.FallbackBlocks(rp)
	}
	rp.block = parse.MergeTables(blockTables...).Parser(fallbacks...)
	return rp
}

func textSpan(s string) ast.Span { return ast.Text{Content: s} }

// ParseSpans parses input as top-level span content.
func (rp *RootParser) ParseSpans(input string) []ast.Span {
	return rp.spans(parse.NewContext(input)).Value()
}

// ParseBlocks parses input as a top-level block sequence.
func (rp *RootParser) ParseBlocks(input string) []ast.Block {
	return rp.blocks(parse.NewContext(input))
}

// SpansOf implements RecursiveSpanParsers.
func (rp *RootParser) SpansOf(ctx parse.Context, text string) []ast.Span {
	level := ctx.NestLevel() + 1
	if level > MaxNestLevel {
		return []ast.Span{ast.Text{Content: text}}
	}
	return rp.spans(ctx.Sub(text).WithNestLevel(level)).Value()
}

// BlocksOf implements RecursiveParsers.
func (rp *RootParser) BlocksOf(ctx parse.Context, text string) []ast.Block {
	level := ctx.NestLevel() + 1
	if level > MaxNestLevel {
		return []ast.Block{ast.Paragraph{Content: []ast.Span{ast.Text{Content: text}}}}
	}
	return rp.blocks(ctx.Sub(text).WithNestLevel(level))
}

// RecursiveSpans implements RecursiveSpanParsers.
func (rp *RootParser) RecursiveSpans(p parse.Parser[string]) parse.Parser[[]ast.Span] {
	return func(ctx parse.Context) parse.Result[[]ast.Span] {
		res := p(ctx)
		if !res.OK() {
			return parse.Propagate[[]ast.Span](res)
		}
		return parse.Success(rp.SpansOf(ctx, res.Value()), res.Next())
	}
}

// RecursiveBlocks implements RecursiveParsers.
func (rp *RootParser) RecursiveBlocks(p parse.Parser[string]) parse.Parser[[]ast.Block] {
	return func(ctx parse.Context) parse.Result[[]ast.Block] {
		res := p(ctx)
		if !res.OK() {
			return parse.Propagate[[]ast.Block](res)
		}
		return parse.Success(rp.BlocksOf(ctx, res.Value()), res.Next())
	}
}

// EscapedText implements RecursiveSpanParsers.
func (rp *RootParser) EscapedText(d parse.DelimitedText) parse.Parser[string] {
	if rp.escape == nil {
		return d.Parser()
	}
	return d.Unescaped(rp.escape).Parser()
}

// EscapedChar implements RecursiveSpanParsers.
func (rp *RootParser) EscapedChar() parse.Parser[string] {
	if rp.escape == nil {
		return parse.Fail[string]("escapes are not supported")
	}
	return rp.escape
}

// blocks parses a block sequence. Input no block parser accepts becomes an
// invalid block covering the rest of the line.
func (rp *RootParser) blocks(ctx parse.Context) []ast.Block {
	var blocks []ast.Block
	cur := ctx
	for {
		if rp.sep != nil {
			for {
				res := rp.sep(cur)
				if !res.OK() || res.Next().Offset() == cur.Offset() {
					break
				}
				cur = res.Next()
			}
		}
		if cur.AtEnd() {
			break
		}

		res := rp.block(cur)
		if res.OK() && res.Next().Offset() > cur.Offset() {
			blocks = append(blocks, res.Value())
			cur = res.Next()
			continue
		}

		line := parse.RestOfLine(cur)
		pos := cur.Position()
		msg := ast.NewMessage(ast.LevelError, "unable to parse block: %s", res.Message())
		src := ast.Source{Text: line.Value(), Line: pos.Line, Column: pos.Column}
		blocks = append(blocks, ast.NewInvalidBlock(msg, src, nil))
		if line.Next().Offset() == cur.Offset() {
			break
		}
		cur = line.Next()
	}
	return attachTargets(blocks)
}

// attachTargets moves the id of an internal link target to the block that
// follows it, unless that block has an id of its own.
func attachTargets(blocks []ast.Block) []ast.Block {
	out := blocks[:0:0]
	for idx := 0; idx < len(blocks); idx++ {
		target, ok := blocks[idx].(ast.InternalLinkTarget)
		if ok && target.ID != "" && idx+1 < len(blocks) && blocks[idx+1].Opts().ID == "" {
			if _, nextIsTarget := blocks[idx+1].(ast.InternalLinkTarget); !nextIsTarget {
				out = append(out, ast.WithID(blocks[idx+1], target.ID))
				idx++
				continue
			}
		}
		out = append(out, blocks[idx])
	}
	return out
}

// GrammarParser is a Parser for a grammar-based format.
type GrammarParser struct {
	format string
	root   *RootParser
}

// NewGrammarParser returns a Parser producing documents of the named
// format.
func NewGrammarParser(format string, g Grammar, exts ...Extension) *GrammarParser {
	return &GrammarParser{format: format, root: NewRootParser(g, exts...)}
}

// Root returns the underlying root parser.
func (p *GrammarParser) Root() *RootParser {
	return p.root
}

// Parse implements Parser.
func (p *GrammarParser) Parse(ctx context.Context, path ast.Path, content []byte) (*ast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	input := strings.ReplaceAll(string(content), "\r\n", "\n")
	return &ast.Document{Path: path, Content: p.root.ParseBlocks(input), Format: p.format}, nil
}
