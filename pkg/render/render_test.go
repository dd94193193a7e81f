package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/config"
)

func text(s string) ast.Text { return ast.Text{Content: s} }

func warning(msg, src string) ast.InvalidSpan {
	return ast.NewInvalidSpan(ast.NewMessage(ast.LevelWarning, "%s", msg), ast.Source{Text: src, Line: 2, Column: 5})
}

func renderString(t *testing.T, format config.RenderFormat, opts Options, doc *ast.Document) string {
	t.Helper()
	r, err := New(format, opts)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, doc))
	return buf.String()
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New("pdf", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestHTMLRenderer_Page(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{
		Path:   ast.ParsePath("/intro.rst"),
		Format: "rst",
		Content: []ast.Block{
			ast.Header{Level: 1, Content: []ast.Span{text("Intro & more")}, Options: ast.Options{ID: "intro-more"}},
			ast.Paragraph{Content: []ast.Span{
				text("a < b "),
				ast.Emphasized{Content: []ast.Span{text("em")}},
				text(" "),
				ast.Literal{Content: "x<y"},
			}},
			ast.Comment{Text: "hidden"},
			ast.List{Ordered: true, Start: 3, Items: []ast.Block{
				ast.ListItem{Content: []ast.Block{ast.Paragraph{Content: []ast.Span{text("three")}}}},
			}},
		},
	}

	out := renderString(t, config.RenderHTML, Options{}, doc)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, "<title>Intro &amp; more</title>")
	assert.Contains(t, out, `<h1 id="intro-more">Intro &amp; more</h1>`)
	assert.Contains(t, out, "<p>a &lt; b <em>em</em> <code>x&lt;y</code></p>")
	assert.Contains(t, out, `<ol start="3">`)
	assert.Contains(t, out, "<li>three</li>")
	assert.NotContains(t, out, "hidden")
}

func TestHTMLRenderer_TitleFallsBackToName(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{Path: ast.ParsePath("/notes.md"), Format: "markdown"}
	out := renderString(t, config.RenderHTML, Options{}, doc)
	assert.Contains(t, out, "<title>notes.md</title>")
}

func TestHTMLRenderer_Links(t *testing.T) {
	t.Parallel()

	link := func(label string, target ast.Target) ast.Span {
		return ast.SpanLink{Content: []ast.Span{text(label)}, Target: target}
	}
	doc := &ast.Document{
		Path:   ast.ParsePath("/guide/intro.rst"),
		Format: "rst",
		Content: []ast.Block{ast.Paragraph{Content: []ast.Span{
			link("other", ast.InternalTarget{Path: ast.ParsePath("/guide/other.rst#setup"), Relative: "other.rst#setup"}),
			link("self", ast.InternalTarget{Path: ast.ParsePath("/guide/intro.rst#usage"), Relative: "intro.rst#usage"}),
			link("logo", ast.InternalTarget{Path: ast.ParsePath("/assets/logo.png"), Relative: "../assets/logo.png"}),
			link("site", ast.ExternalTarget{URL: "https://example.com/?a=1&b=2"}),
			ast.FootnoteLink{Ref: "note-1", Label: "1"},
		}}},
	}
	opts := Options{Documents: map[ast.Path]bool{
		ast.ParsePath("/guide/intro.rst"): true,
		ast.ParsePath("/guide/other.rst"): true,
	}}

	out := renderString(t, config.RenderHTML, opts, doc)

	assert.Contains(t, out, `<a href="other.html#setup">other</a>`)
	assert.Contains(t, out, `<a href="#usage">self</a>`)
	assert.Contains(t, out, `<a href="../assets/logo.png">logo</a>`)
	assert.Contains(t, out, `<a href="https://example.com/?a=1&amp;b=2">site</a>`)
	assert.Contains(t, out, `<a href="#note-1" class="footnote-ref">[1]</a>`)
}

func TestHTMLRenderer_CodeBlocks(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{
		Path:   ast.ParsePath("/code.md"),
		Format: "markdown",
		Content: []ast.Block{
			ast.CodeBlock{Language: "go", Code: "package main\n"},
			ast.CodeBlock{Language: "html", Code: "<b>raw</b>\n", Options: ast.Options{Styles: []string{"raw"}}},
		},
	}

	out := renderString(t, config.RenderHTML, Options{Highlight: config.HighlightConfig{Style: "github"}}, doc)

	assert.Contains(t, out, `<div class="code language-go">`)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "package")
	assert.Contains(t, out, "<b>raw</b>\n")
}

func TestHTMLRenderer_Messages(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{
		Path:   ast.ParsePath("/a.rst"),
		Format: "rst",
		Content: []ast.Block{ast.Paragraph{Content: []ast.Span{
			text("see "),
			warning("unresolved link id reference: x", "x_"),
		}}},
	}

	shown := renderString(t, config.RenderHTML, Options{MessageLevel: ast.LevelWarning}, doc)
	assert.Contains(t, shown, `<span class="message warning" title="unresolved link id reference: x">x_</span>`)

	hidden := renderString(t, config.RenderHTML, Options{MessageLevel: ast.LevelError}, doc)
	assert.NotContains(t, hidden, "message")
	assert.Contains(t, hidden, "<p>see x_</p>")
}

func TestASTRenderer(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{
		Path:   ast.ParsePath("/a.rst"),
		Format: "rst",
		Content: []ast.Block{
			ast.Header{Level: 1, Content: []ast.Span{text("Intro")}, Options: ast.Options{ID: "intro"}},
			ast.Paragraph{Content: []ast.Span{
				ast.Emphasized{Content: []ast.Span{text("hi")}},
				warning("bad", "b_"),
			}},
		},
	}

	out := renderString(t, config.RenderAST, Options{}, doc)

	want := strings.Join([]string{
		"Document /a.rst [rst]",
		"  Header level=1 #intro",
		`    Text "Intro"`,
		"  Paragraph",
		"    Emphasized",
		`      Text "hi"`,
		`    InvalidSpan warning at 2:5: "bad"`,
		`      Text "b_"`,
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestDumpRenderer(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{
		Path:    ast.ParsePath("/a.md"),
		Format:  "markdown",
		Content: []ast.Block{ast.Paragraph{Content: []ast.Span{text("hello")}}},
	}

	out := renderString(t, config.RenderDump, Options{}, doc)

	assert.True(t, strings.HasPrefix(out, "// /a.md [markdown]\n"))
	assert.Contains(t, out, "Paragraph")
	assert.Contains(t, out, `"hello"`)
}

func TestFilterMessages(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{
		Path: ast.ParsePath("/a.rst"),
		Content: []ast.Block{
			ast.InvalidBlock{Message: ast.NewMessage(ast.LevelInfo, "dropped")},
			ast.NewInvalidBlock(ast.NewMessage(ast.LevelError, "kept"), ast.Source{Text: "kept"}, nil),
			ast.Paragraph{Content: []ast.Span{warning("w", "src")}},
		},
	}

	t.Run("debug keeps everything", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, doc, FilterMessages(doc, ast.LevelDebug))
	})

	t.Run("warning", func(t *testing.T) {
		t.Parallel()
		got := FilterMessages(doc, ast.LevelWarning)
		require.Len(t, got.Content, 2)
		assert.IsType(t, ast.InvalidBlock{}, got.Content[0])
		assert.IsType(t, ast.InvalidSpan{}, got.Content[1].(ast.Paragraph).Content[0])
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		got := FilterMessages(doc, ast.LevelError)
		require.Len(t, got.Content, 2)
		assert.Equal(t, []ast.Span{text("src")}, got.Content[1].(ast.Paragraph).Content)
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	p := ast.ParsePath("/guide/intro.rst#part")
	assert.Equal(t, ast.ParsePath("/guide/intro.html"), OutputPath(p, config.RenderHTML))
	assert.Equal(t, ast.ParsePath("/guide/intro.txt"), OutputPath(p, config.RenderAST))
	assert.Equal(t, ast.ParsePath("/guide/intro.dump"), OutputPath(p, config.RenderDump))
}

func TestDocumentSet(t *testing.T) {
	t.Parallel()

	tree := &ast.DocumentTree{
		Path:          ast.Root,
		TitleDocument: &ast.Document{Path: ast.ParsePath("/index.rst")},
		Content: []ast.TreeContent{
			&ast.Document{Path: ast.ParsePath("/a.md")},
			&ast.DocumentTree{
				Path:    ast.ParsePath("/sub"),
				Content: []ast.TreeContent{&ast.Document{Path: ast.ParsePath("/sub/b.rst")}},
			},
		},
		StaticDocuments: []ast.Path{ast.ParsePath("/logo.png")},
	}

	assert.Equal(t, map[ast.Path]bool{
		ast.ParsePath("/index.rst"): true,
		ast.ParsePath("/a.md"):      true,
		ast.ParsePath("/sub/b.rst"): true,
	}, DocumentSet(tree))
}
