package render

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/yaklabco/docweave/pkg/ast"
)

// ASTRenderer writes an indented outline of the document tree, one node per
// line.
type ASTRenderer struct {
	opts Options
}

// Render writes the outline of doc.
func (r *ASTRenderer) Render(w io.Writer, doc *ast.Document) error {
	doc = FilterMessages(doc, r.opts.MessageLevel)

	bw := bufio.NewWriter(w)
	o := &outline{w: bw}
	o.printf(0, "Document %s [%s]", doc.Path, doc.Format)
	for _, b := range doc.Content {
		o.element(1, b)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", doc.Path, err)
	}
	return nil
}

type outline struct {
	w *bufio.Writer
}

func (o *outline) printf(depth int, format string, args ...any) {
	o.w.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(o.w, format, args...)
	o.w.WriteByte('\n')
}

func (o *outline) element(depth int, e ast.Element) {
	o.printf(depth, "%s%s%s", nodeName(e), nodeDetail(e), options(e))

	switch node := e.(type) {
	case ast.InvalidBlock:
		if node.Fallback != nil {
			o.element(depth+1, node.Fallback)
		}
		return
	case ast.InvalidSpan:
		if node.Fallback != nil {
			o.element(depth+1, node.Fallback)
		}
		return
	}
	if c, ok := e.(ast.BlockContainer); ok {
		for _, b := range c.Blocks() {
			o.element(depth+1, b)
		}
	}
	if c, ok := e.(ast.SpanContainer); ok {
		for _, s := range c.Spans() {
			o.element(depth+1, s)
		}
	}
}

func nodeName(e ast.Element) string {
	return reflect.TypeOf(e).Name()
}

func nodeDetail(e ast.Element) string {
	switch node := e.(type) {
	case ast.Header:
		return " level=" + strconv.Itoa(node.Level)
	case ast.DecoratedHeader:
		return fmt.Sprintf(" char=%q overline=%t", node.Decoration.Char, node.Decoration.Overline)
	case ast.List:
		if node.Ordered {
			return " ordered start=" + strconv.Itoa(node.Start)
		}
		return " bullet"
	case ast.CodeBlock:
		return fmt.Sprintf(" language=%q %q", node.Language, node.Code)
	case ast.Comment:
		return " " + strconv.Quote(node.Text)
	case ast.Citation:
		return " label=" + node.Label
	case ast.Footnote:
		return " label=" + node.Label
	case ast.FootnoteDefinition:
		return " label=" + node.Label.String()
	case ast.ExternalLinkDefinition:
		return fmt.Sprintf(" id=%q url=%q", node.ID, node.URL)
	case ast.InternalLinkDefinition:
		return fmt.Sprintf(" id=%q path=%q", node.ID, node.Path)
	case ast.LinkAlias:
		return fmt.Sprintf(" id=%q target=%q", node.ID, node.Target)
	case ast.Text:
		return " " + strconv.Quote(node.Content)
	case ast.Literal:
		return " " + strconv.Quote(node.Content)
	case ast.SpanLink:
		return " -> " + targetString(node.Target)
	case ast.Image:
		return fmt.Sprintf(" alt=%q -> %s", node.Alt, targetString(node.Target))
	case ast.FootnoteLink:
		return fmt.Sprintf(" ref=%s label=%s", node.Ref, node.Label)
	case ast.CitationLink:
		return fmt.Sprintf(" ref=%s label=%s", node.Ref, node.Label)
	case ast.InvalidBlock:
		return " " + messageDetail(node.Message, node.Source)
	case ast.InvalidSpan:
		return " " + messageDetail(node.Message, node.Source)
	case ast.Reference:
		return " " + strconv.Quote(node.SourceText().Text)
	}
	return ""
}

func targetString(t ast.Target) string {
	switch target := t.(type) {
	case ast.InternalTarget:
		if target.Path == (ast.Path{}) {
			return "internal " + target.Relative
		}
		return "internal " + target.Path.String()
	case ast.ExternalTarget:
		return "external " + target.URL
	case nil:
		return "<none>"
	}
	return t.String()
}

func messageDetail(msg ast.RuntimeMessage, src ast.Source) string {
	if src.HasPosition() {
		return fmt.Sprintf("%s at %d:%d: %q", msg.Level, src.Line, src.Column, msg.Content)
	}
	return fmt.Sprintf("%s: %q", msg.Level, msg.Content)
}

func options(e ast.Element) string {
	o := e.Opts()
	var sb strings.Builder
	if o.ID != "" {
		sb.WriteString(" #" + o.ID)
	}
	for _, s := range o.Styles {
		sb.WriteString(" ." + s)
	}
	return sb.String()
}
