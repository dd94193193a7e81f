package markdown

import (
	"bytes"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/langdetect"
	"github.com/yaklabco/docweave/pkg/parse"
)

// mapper converts a goldmark AST into document tree blocks and spans.
type mapper struct {
	content []byte
	lines   *parse.Source

	// footnotes maps footnote indexes to their reference names.
	footnotes map[int]string
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{
		content:   content,
		lines:     parse.NewSource(string(content)),
		footnotes: make(map[int]string),
	}
}

// mapDocument converts a goldmark document node to the document content.
func (m *mapper) mapDocument(gmDoc gast.Node) []ast.Block {
	_ = gast.Walk(gmDoc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering {
			m.footnotes[fn.Index] = string(fn.Ref)
		}
		return gast.WalkContinue, nil
	})
	return m.mapBlocks(gmDoc)
}

func (m *mapper) mapBlocks(parent gast.Node) []ast.Block {
	var blocks []ast.Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		// The footnote list is a container goldmark appends to the document.
		if _, ok := child.(*east.FootnoteList); ok {
			blocks = append(blocks, m.mapBlocks(child)...)
			continue
		}
		if b := m.mapBlock(child); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// mapBlock converts a single goldmark block node.
func (m *mapper) mapBlock(gmNode gast.Node) ast.Block {
	switch gmn := gmNode.(type) {
	case *gast.Heading:
		return ast.Header{Level: gmn.Level, Content: m.mapSpans(gmn), Options: m.attributes(gmn)}

	case *gast.Paragraph, *gast.TextBlock:
		return ast.Paragraph{Content: m.mapSpans(gmn)}

	case *gast.List:
		list := ast.List{Ordered: gmn.IsOrdered(), Items: m.mapBlocks(gmn)}
		if list.Ordered {
			list.Start = gmn.Start
		}
		return list

	case *gast.ListItem:
		return ast.ListItem{Content: m.mapBlocks(gmn)}

	case *gast.Blockquote:
		return ast.QuotedBlock{Content: m.mapBlocks(gmn)}

	case *gast.FencedCodeBlock:
		return m.mapCodeBlock(gmn, string(gmn.Language(m.content)))

	case *gast.CodeBlock:
		return m.mapCodeBlock(gmn, "")

	case *gast.ThematicBreak:
		return ast.Rule{}

	case *gast.HTMLBlock:
		raw := m.linesOf(gmn)
		if gmn.HasClosure() {
			raw += string(gmn.ClosureLine.Value(m.content))
		}
		raw = strings.TrimRight(raw, "\n")
		if strings.HasPrefix(raw, "<!--") {
			return ast.Comment{Text: strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(raw, "<!--"), "-->"))}
		}
		return ast.CodeBlock{Language: "html", Code: raw, Options: ast.Options{Styles: []string{"raw"}}}

	case *east.Footnote:
		return ast.FootnoteDefinition{
			Label:   ast.AutonumberLabel{Label: string(gmn.Ref)},
			Content: m.mapBlocks(gmn),
		}

	case *east.Table:
		return ast.BlockSequence{Content: m.mapBlocks(gmn), Options: ast.Options{Styles: []string{"table"}}}

	case *east.TableHeader:
		return ast.BlockSequence{Content: m.mapBlocks(gmn), Options: ast.Options{Styles: []string{"table-header"}}}

	case *east.TableRow:
		return ast.BlockSequence{Content: m.mapBlocks(gmn), Options: ast.Options{Styles: []string{"table-row"}}}

	case *east.TableCell:
		return ast.Paragraph{Content: m.mapSpans(gmn), Options: ast.Options{Styles: []string{"table-cell"}}}
	}

	if gmNode.Type() == gast.TypeBlock {
		return ast.BlockSequence{Content: m.mapBlocks(gmNode)}
	}
	return ast.Paragraph{Content: m.mapSpans(gmNode)}
}

// attributes reads the {#id .class} attributes of a heading.
func (m *mapper) attributes(n gast.Node) ast.Options {
	var opts ast.Options
	if id, ok := n.AttributeString("id"); ok {
		if b, ok := id.([]byte); ok {
			opts.ID = string(b)
		}
	}
	if class, ok := n.AttributeString("class"); ok {
		if b, ok := class.([]byte); ok {
			opts = opts.WithStyles(strings.Fields(string(b))...)
		}
	}
	return opts
}

func (m *mapper) linesOf(n gast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}
	return buf.String()
}

func (m *mapper) mapCodeBlock(n gast.Node, info string) ast.Block {
	code := strings.TrimRight(m.linesOf(n), "\n")
	lang := langdetect.Language(info)
	if lang == "" {
		lang = langdetect.Detect(code)
	}
	return ast.CodeBlock{Language: lang, Code: code}
}

// mapSpans converts the inline children of a node, merging adjacent text.
func (m *mapper) mapSpans(parent gast.Node) []ast.Span {
	var spans []ast.Span
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		spans = appendSpans(spans, m.mapSpan(child)...)
	}
	return spans
}

func appendSpans(spans []ast.Span, add ...ast.Span) []ast.Span {
	for _, s := range add {
		t, ok := s.(ast.Text)
		if ok && len(spans) > 0 {
			if prev, ok := spans[len(spans)-1].(ast.Text); ok && prev.Options.ID == "" && t.Options.ID == "" {
				spans[len(spans)-1] = ast.Text{Content: prev.Content + t.Content}
				continue
			}
		}
		if ok && t.Content == "" {
			continue
		}
		spans = append(spans, s)
	}
	return spans
}

// mapSpan converts a single goldmark inline node.
func (m *mapper) mapSpan(gmNode gast.Node) []ast.Span {
	switch gmn := gmNode.(type) {
	case *gast.Text:
		value := string(gmn.Value(m.content))
		switch {
		case gmn.HardLineBreak():
			return []ast.Span{ast.Text{Content: value}, ast.LineBreak{}}
		case gmn.SoftLineBreak():
			value += "\n"
		}
		return []ast.Span{ast.Text{Content: value}}

	case *gast.String:
		return []ast.Span{ast.Text{Content: string(gmn.Value)}}

	case *gast.Emphasis:
		if gmn.Level == 2 {
			return []ast.Span{ast.Strong{Content: m.mapSpans(gmn)}}
		}
		return []ast.Span{ast.Emphasized{Content: m.mapSpans(gmn)}}

	case *gast.CodeSpan:
		return []ast.Span{ast.Literal{Content: m.plainText(gmn)}}

	case *gast.Link:
		return []ast.Span{m.mapLink(gmn)}

	case *gast.Image:
		return []ast.Span{ast.Image{
			Alt:    m.plainText(gmn),
			Target: imageTarget(string(gmn.Destination)),
			Title:  string(gmn.Title),
		}}

	case *gast.AutoLink:
		url := string(gmn.URL(m.content))
		if gmn.AutoLinkType == gast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		return []ast.Span{ast.SpanLink{
			Content: []ast.Span{ast.Text{Content: string(gmn.Label(m.content))}},
			Target:  ast.ExternalTarget{URL: url},
		}}

	case *gast.RawHTML:
		var buf bytes.Buffer
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			buf.Write(seg.Value(m.content))
		}
		return []ast.Span{ast.Literal{Content: buf.String(), Options: ast.Options{Styles: []string{"html"}}}}

	case *east.Strikethrough:
		return []ast.Span{ast.Deleted{Content: m.mapSpans(gmn)}}

	case *east.TaskCheckBox:
		if gmn.IsChecked {
			return []ast.Span{ast.Text{Content: "[x] "}}
		}
		return []ast.Span{ast.Text{Content: "[ ] "}}

	case *east.FootnoteLink:
		return []ast.Span{ast.FootnoteReference{
			Label:  ast.AutonumberLabel{Label: m.footnotes[gmn.Index]},
			Source: m.source(gmn, "[^"+m.footnotes[gmn.Index]+"]"),
		}}

	case *east.FootnoteBacklink:
		return nil
	}
	return m.mapSpans(gmNode)
}

// mapLink maps absolute URLs to external links and everything else to
// path references that link resolution validates against the tree.
func (m *mapper) mapLink(link *gast.Link) ast.Span {
	dest := string(link.Destination)
	content := m.mapSpans(link)
	if isExternal(dest) {
		return ast.SpanLink{Content: content, Target: ast.ExternalTarget{URL: dest}, Title: string(link.Title)}
	}
	return ast.PathReference{
		Content: content,
		Path:    dest,
		Title:   string(link.Title),
		Source:  m.source(link, dest),
	}
}

func imageTarget(dest string) ast.Target {
	if isExternal(dest) {
		return ast.ExternalTarget{URL: dest}
	}
	return ast.InternalTarget{Relative: dest}
}

// isExternal reports whether dest has a URL scheme.
func isExternal(dest string) bool {
	if strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "//") {
		return true
	}
	scheme, _, ok := strings.Cut(dest, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, "/.#?")
}

// plainText concatenates the text below n.
func (m *mapper) plainText(n gast.Node) string {
	var buf bytes.Buffer
	_ = gast.Walk(n, func(c gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gast.Text:
			buf.Write(t.Value(m.content))
		case *gast.String:
			buf.Write(t.Value)
		}
		return gast.WalkContinue, nil
	})
	return buf.String()
}

// source returns the position of the first text below n.
func (m *mapper) source(n gast.Node, text string) ast.Source {
	offset := firstSegment(n)
	if offset < 0 {
		return ast.Source{Text: text}
	}
	pos := m.lines.Position(offset)
	return ast.Source{Text: text, Line: pos.Line, Column: pos.Column}
}

func firstSegment(n gast.Node) int {
	if t, ok := n.(*gast.Text); ok {
		return t.Segment.Start
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if start := firstSegment(child); start >= 0 {
			return start
		}
	}
	return -1
}
