package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/yaklabco/docweave/pkg/ast"
)

// HTMLRenderer renders a standalone HTML page per document.
type HTMLRenderer struct {
	opts Options
}

// Render writes doc as HTML.
func (r *HTMLRenderer) Render(w io.Writer, doc *ast.Document) error {
	doc = FilterMessages(doc, r.opts.MessageLevel)

	hw := &htmlWriter{opts: r.opts, doc: doc}
	title := ast.ExtractText(doc.Title())
	if title == "" {
		title = doc.Path.Name()
	}

	hw.line("<!DOCTYPE html>")
	hw.line("<html>")
	hw.line("<head>")
	hw.line(`<meta charset="utf-8">`)
	hw.printf("<title>%s</title>\n", html.EscapeString(title))
	hw.line("</head>")
	hw.line("<body>")
	hw.blocks(doc.Content)
	hw.line("</body>")
	hw.line("</html>")

	if hw.err != nil {
		return hw.err
	}
	if _, err := w.Write(hw.buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", doc.Path, err)
	}
	return nil
}

type htmlWriter struct {
	opts Options
	doc  *ast.Document
	buf  bytes.Buffer
	err  error
}

func (hw *htmlWriter) write(s string) { hw.buf.WriteString(s) }

func (hw *htmlWriter) line(s string) {
	hw.buf.WriteString(s)
	hw.buf.WriteByte('\n')
}

func (hw *htmlWriter) printf(format string, args ...any) {
	fmt.Fprintf(&hw.buf, format, args...)
}

// open writes a start tag with the id and class attributes of opts.
func (hw *htmlWriter) open(tag string, opts ast.Options, classes ...string) {
	hw.write("<" + tag + attrs(opts, classes...) + ">")
}

func attrs(opts ast.Options, classes ...string) string {
	var sb strings.Builder
	if opts.ID != "" {
		sb.WriteString(` id="` + html.EscapeString(opts.ID) + `"`)
	}
	classes = append(classes, opts.Styles...)
	if len(classes) > 0 {
		sb.WriteString(` class="` + html.EscapeString(strings.Join(classes, " ")) + `"`)
	}
	return sb.String()
}

func (hw *htmlWriter) blocks(blocks []ast.Block) {
	for _, b := range blocks {
		hw.block(b)
	}
}

func (hw *htmlWriter) block(b ast.Block) {
	switch node := b.(type) {
	case ast.Paragraph:
		hw.open("p", node.Options)
		hw.spans(node.Content)
		hw.line("</p>")
	case ast.Header:
		tag := "h" + strconv.Itoa(min(max(node.Level, 1), 6))
		hw.open(tag, node.Options)
		hw.spans(node.Content)
		hw.line("</" + tag + ">")
	case ast.DecoratedHeader:
		hw.open("h1", node.Options)
		hw.spans(node.Content)
		hw.line("</h1>")
	case ast.BlockSequence:
		if node.ID == "" && len(node.Styles) == 0 {
			hw.blocks(node.Content)
			return
		}
		hw.open("div", node.Options)
		hw.line("")
		hw.blocks(node.Content)
		hw.line("</div>")
	case ast.QuotedBlock:
		hw.open("blockquote", node.Options)
		hw.line("")
		hw.blocks(node.Content)
		hw.line("</blockquote>")
	case ast.List:
		tag := "ul"
		if node.Ordered {
			tag = "ol"
		}
		hw.write("<" + tag + attrs(node.Options))
		if node.Ordered && node.Start > 1 {
			hw.printf(` start="%d"`, node.Start)
		}
		hw.line(">")
		hw.blocks(node.Items)
		hw.line("</" + tag + ">")
	case ast.ListItem:
		hw.open("li", node.Options)
		hw.itemContent(node.Content)
		hw.line("</li>")
	case ast.CodeBlock:
		hw.code(node)
	case ast.Rule:
		hw.line("<hr" + attrs(node.Options) + ">")
	case ast.Citation:
		hw.labelled("citation", node.Options, node.Label, node.Content)
	case ast.Footnote:
		hw.labelled("footnote", node.Options, node.Label, node.Content)
	case ast.FootnoteDefinition:
		hw.labelled("footnote", node.Options, node.Label.String(), node.Content)
	case ast.InternalLinkTarget:
		if node.ID != "" {
			hw.line(`<span id="` + html.EscapeString(node.ID) + `"></span>`)
		}
	case ast.InvalidBlock:
		hw.open("div", node.Options, "message", node.Message.Level.String())
		hw.printf(`<p class="message-text">%s</p>`+"\n", html.EscapeString(node.Message.Content))
		if node.Fallback != nil {
			hw.block(node.Fallback)
		}
		hw.line("</div>")
	case ast.Comment, ast.ExternalLinkDefinition, ast.InternalLinkDefinition, ast.LinkAlias:
		// Not rendered.
	default:
		hw.err = fmt.Errorf("html: unsupported block %T in %s", b, hw.doc.Path)
	}
}

// itemContent renders a list item, unwrapping a single paragraph.
func (hw *htmlWriter) itemContent(content []ast.Block) {
	if len(content) == 1 {
		if p, ok := content[0].(ast.Paragraph); ok && p.ID == "" && len(p.Styles) == 0 {
			hw.spans(p.Content)
			return
		}
	}
	hw.blocks(content)
}

func (hw *htmlWriter) labelled(class string, opts ast.Options, label string, content []ast.Block) {
	hw.open("div", opts, class)
	hw.printf(`<span class="label">[%s]</span>`+"\n", html.EscapeString(label))
	hw.blocks(content)
	hw.line("</div>")
}

// code highlights a code block with chroma. Blocks styled "raw" in the
// html language are passed through unchanged.
func (hw *htmlWriter) code(node ast.CodeBlock) {
	if node.HasStyle("raw") && node.Language == "html" {
		hw.write(node.Code)
		return
	}

	lexer := lexers.Get(node.Language)
	if lexer == nil {
		lexer = lexers.Analyse(node.Code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := hlhtml.New(
		hlhtml.Standalone(false),
		hlhtml.WithLineNumbers(hw.opts.Highlight.LineNumbers),
	)
	iterator, err := lexer.Tokenise(nil, node.Code)
	if err != nil {
		hw.err = fmt.Errorf("highlight code in %s: %w", hw.doc.Path, err)
		return
	}

	classes := []string{"code"}
	if node.Language != "" {
		classes = append(classes, "language-"+node.Language)
	}
	hw.open("div", node.Options, classes...)
	hw.line("")
	if err := formatter.Format(&hw.buf, styles.Get(hw.opts.Highlight.Style), iterator); err != nil {
		hw.err = fmt.Errorf("highlight code in %s: %w", hw.doc.Path, err)
		return
	}
	hw.line("</div>")
}

func (hw *htmlWriter) spans(spans []ast.Span) {
	for _, s := range spans {
		hw.span(s)
	}
}

func (hw *htmlWriter) span(s ast.Span) {
	switch node := s.(type) {
	case ast.Text:
		if node.ID == "" && len(node.Styles) == 0 {
			hw.write(html.EscapeString(node.Content))
			return
		}
		hw.open("span", node.Options)
		hw.write(html.EscapeString(node.Content))
		hw.write("</span>")
	case ast.Emphasized:
		hw.wrap("em", node.Options, node.Content)
	case ast.Strong:
		hw.wrap("strong", node.Options, node.Content)
	case ast.Deleted:
		hw.wrap("del", node.Options, node.Content)
	case ast.SpanSequence:
		hw.wrap("span", node.Options, node.Content)
	case ast.Literal:
		hw.open("code", node.Options)
		hw.write(html.EscapeString(node.Content))
		hw.write("</code>")
	case ast.LineBreak:
		hw.line("<br>")
	case ast.SpanLink:
		hw.write(`<a href="` + html.EscapeString(hw.href(node.Target)) + `"`)
		if node.Title != "" {
			hw.write(` title="` + html.EscapeString(node.Title) + `"`)
		}
		hw.write(attrs(node.Options) + ">")
		if len(node.Content) == 0 {
			hw.write(html.EscapeString(node.Target.String()))
		} else {
			hw.spans(node.Content)
		}
		hw.write("</a>")
	case ast.Image:
		hw.write(`<img src="` + html.EscapeString(hw.href(node.Target)) + `" alt="` + html.EscapeString(node.Alt) + `"`)
		if node.Title != "" {
			hw.write(` title="` + html.EscapeString(node.Title) + `"`)
		}
		hw.write(attrs(node.Options) + ">")
	case ast.FootnoteLink:
		hw.anchor(node.Options, "footnote-ref", node.Ref, node.Label)
	case ast.CitationLink:
		hw.anchor(node.Options, "citation-ref", node.Ref, node.Label)
	case ast.InvalidSpan:
		hw.write("<span" + attrs(node.Options, "message", node.Message.Level.String()) +
			` title="` + html.EscapeString(node.Message.Content) + `">`)
		if node.Fallback != nil {
			hw.span(node.Fallback)
		}
		hw.write("</span>")
	case ast.Reference:
		hw.write(html.EscapeString(node.SourceText().Text))
	default:
		hw.err = fmt.Errorf("html: unsupported span %T in %s", s, hw.doc.Path)
	}
}

func (hw *htmlWriter) wrap(tag string, opts ast.Options, content []ast.Span) {
	hw.open(tag, opts)
	hw.spans(content)
	hw.write("</" + tag + ">")
}

func (hw *htmlWriter) anchor(opts ast.Options, class, ref, label string) {
	hw.write(`<a href="#` + html.EscapeString(ref) + `"` + attrs(opts, class) + `>[` + html.EscapeString(label) + `]</a>`)
}

// href returns the link destination of a target as seen from the document
// being rendered.
func (hw *htmlWriter) href(target ast.Target) string {
	internal, ok := target.(ast.InternalTarget)
	if !ok {
		return target.String()
	}
	p := internal.Path
	if p == (ast.Path{}) {
		return internal.Relative
	}
	if hw.opts.Documents[p.WithoutFragment()] {
		if p.WithoutFragment() == hw.doc.Path.WithoutFragment() && p.Fragment() != "" {
			return "#" + p.Fragment()
		}
		p = p.WithExt(".html")
	}
	return p.RelativeTo(hw.doc.Path.Parent())
}
