package markup_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
	"github.com/yaklabco/docweave/pkg/parse"
)

// testGrammar knows *emphasis*, "> " quotes, "@id" targets and paragraphs.
func testGrammar() markup.Grammar {
	anyChar := parse.Chars(func(rune) bool { return true }, 1, 1)
	return markup.Grammar{
		Spans: func(rec markup.RecursiveSpanParsers) []parse.PrefixedParser[ast.Span] {
			emph := parse.Map(
				rec.RecursiveSpans(parse.Then(parse.Literal("*").Parser(), rec.EscapedText(parse.DelimitedBy("*").NonEmpty()))),
				func(content []ast.Span) ast.Span { return ast.Emphasized{Content: content} },
			)
			return []parse.PrefixedParser[ast.Span]{parse.Prefixed(parse.NewCharSet('*'), emph)}
		},
		Blocks: func(rec markup.RecursiveParsers) []parse.PrefixedParser[ast.Block] {
			quoteLine := parse.Then(parse.Literal(">").Parser(), parse.RestOfLine)
			quoteText := parse.Map(parse.Rep1(quoteLine), func(lines []string) string {
				return strings.Join(lines, "\n")
			})
			quote := parse.Map(rec.RecursiveBlocks(quoteText), func(blocks []ast.Block) ast.Block {
				return ast.QuotedBlock{Content: blocks}
			})
			target := parse.Map(parse.Then(parse.Literal("@").Parser(), parse.RestOfLine), func(id string) ast.Block {
				return ast.InternalLinkTarget{Options: ast.Options{ID: id}}
			})
			return []parse.PrefixedParser[ast.Block]{
				parse.Prefixed(parse.NewCharSet('>'), quote),
				parse.Prefixed(parse.NewCharSet('@'), target),
			}
		},
		FallbackBlocks: func(rec markup.RecursiveParsers) []parse.Parser[ast.Block] {
			line := parse.Then(parse.Not(parse.BlankLine.Or(parse.EOF)), parse.RestOfLine).Filter(
				func(s string) bool { return !strings.HasPrefix(s, "?") },
				func(string) string { return "unexpected '?'" },
			)
			text := parse.Map(parse.Rep1(line), func(lines []string) string { return strings.Join(lines, "\n") })
			return []parse.Parser[ast.Block]{parse.Map(rec.RecursiveSpans(text), func(spans []ast.Span) ast.Block {
				return ast.Paragraph{Content: spans}
			})}
		},
		Separator: parse.BlankLine,
		Escape:    anyChar,
	}
}

func TestRecursiveSpans(t *testing.T) {
	t.Parallel()

	root := markup.NewRootParser(testGrammar())
	spans := root.ParseSpans(`a *b* \*c\* d`)

	assert.Equal(t, []ast.Span{
		ast.Text{Content: "a "},
		ast.Emphasized{Content: []ast.Span{ast.Text{Content: "b"}}},
		ast.Text{Content: " *c* d"},
	}, spans)
}

func TestRecursiveBlocks(t *testing.T) {
	t.Parallel()

	root := markup.NewRootParser(testGrammar())
	blocks := root.ParseBlocks("first *para*\n\n>quoted\n>still\n\nlast\n")

	require.Len(t, blocks, 3)
	assert.Equal(t, ast.Paragraph{Content: []ast.Span{
		ast.Text{Content: "first "},
		ast.Emphasized{Content: []ast.Span{ast.Text{Content: "para"}}},
	}}, blocks[0])
	assert.Equal(t, ast.QuotedBlock{Content: []ast.Block{
		ast.Paragraph{Content: []ast.Span{ast.Text{Content: "quoted\nstill"}}},
	}}, blocks[1])
}

func TestNestingLimit(t *testing.T) {
	t.Parallel()

	root := markup.NewRootParser(testGrammar())
	blocks := root.ParseBlocks(strings.Repeat(">", 20) + "deep")

	depth := 0
	current := blocks
	for {
		require.Len(t, current, 1)
		quote, ok := current[0].(ast.QuotedBlock)
		if !ok {
			break
		}
		depth++
		current = quote.Content
	}
	assert.Equal(t, markup.MaxNestLevel+1, depth)

	para, ok := current[0].(ast.Paragraph)
	require.True(t, ok, "expected paragraph, got %T", current[0])
	assert.Equal(t, []ast.Span{ast.Text{Content: strings.Repeat(">", 20-depth) + "deep"}}, para.Content)
}

func TestUnparsableBlock(t *testing.T) {
	t.Parallel()

	root := markup.NewRootParser(testGrammar())
	blocks := root.ParseBlocks("ok\n\n?bad\n\nfine")

	require.Len(t, blocks, 3)
	invalid, ok := blocks[1].(ast.InvalidBlock)
	require.True(t, ok, "expected invalid block, got %T", blocks[1])
	assert.Equal(t, "?bad", invalid.Source.Text)
	assert.Equal(t, 3, invalid.Source.Line)
}

func TestTargetsAttachToNextBlock(t *testing.T) {
	t.Parallel()

	root := markup.NewRootParser(testGrammar())
	blocks := root.ParseBlocks("@intro\ntext\n\n@dangling\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, "intro", blocks[0].Opts().ID)
	assert.IsType(t, ast.Paragraph{}, blocks[0])
	assert.Equal(t, ast.InternalLinkTarget{Options: ast.Options{ID: "dangling"}}, blocks[1])
}

func TestExtensionsTakePrecedence(t *testing.T) {
	t.Parallel()

	shout := markup.Extension{
		Name: "shout",
		Spans: func(markup.RecursiveSpanParsers) []parse.PrefixedParser[ast.Span] {
			return []parse.PrefixedParser[ast.Span]{parse.MapPrefixed(parse.Literal("*!*"), func(string) ast.Span {
				return ast.Strong{Content: []ast.Span{ast.Text{Content: "!"}}}
			})}
		},
	}
	root := markup.NewRootParser(testGrammar(), shout)

	assert.Equal(t, []ast.Span{
		ast.Strong{Content: []ast.Span{ast.Text{Content: "!"}}},
		ast.Text{Content: " "},
		ast.Emphasized{Content: []ast.Span{ast.Text{Content: "x"}}},
	}, root.ParseSpans("*!* *x*"))
}

func TestAutolinks(t *testing.T) {
	t.Parallel()

	root := markup.NewRootParser(testGrammar(), markup.Autolinks)

	assert.Equal(t, []ast.Span{
		ast.Text{Content: "see "},
		ast.SpanLink{
			Content: []ast.Span{ast.Text{Content: "https://example.com/a"}},
			Target:  ast.ExternalTarget{URL: "https://example.com/a"},
		},
		ast.Text{Content: ". xhttp://no"},
	}, root.ParseSpans("see https://example.com/a. xhttp://no"))
}

func TestGrammarParser(t *testing.T) {
	t.Parallel()

	p := markup.NewGrammarParser("test", testGrammar())
	doc, err := p.Parse(context.Background(), ast.ParsePath("/a.txt"), []byte("one\r\ntwo\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "test", doc.Format)
	assert.Equal(t, "/a.txt", doc.Path.String())
	assert.Equal(t, []ast.Block{ast.Paragraph{Content: []ast.Span{ast.Text{Content: "one\ntwo"}}}}, doc.Content)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Parse(ctx, ast.ParsePath("/a.txt"), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecursiveParsersKeepFailuresLazy(t *testing.T) {
	t.Parallel()

	root := markup.NewRootParser(testGrammar())

	calls := 0
	failing := func(ctx parse.Context) parse.Result[string] {
		return parse.Failure[string](func(parse.Context) string {
			calls++
			return "no text here"
		}, ctx.Consume(1))
	}

	spans := root.RecursiveSpans(failing)(parse.NewContext("xyz"))
	blocks := root.RecursiveBlocks(failing)(parse.NewContext("xyz"))

	require.False(t, spans.OK())
	require.False(t, blocks.OK())
	assert.Zero(t, calls, "failure messages were evaluated before anyone read them")

	assert.Equal(t, 1, spans.Next().Offset())
	assert.Equal(t, "no text here", blocks.Message())
	assert.Equal(t, 1, calls)
}
