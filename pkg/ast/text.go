package ast

import "strings"

// ExtractText returns the plain text of spans, as a reader would see it.
func ExtractText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		writeText(&sb, s)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, s Span) {
	switch node := s.(type) {
	case Text:
		sb.WriteString(node.Content)
	case Literal:
		sb.WriteString(node.Content)
	case Image:
		sb.WriteString(node.Alt)
	case FootnoteLink:
		sb.WriteString(node.Label)
	case CitationLink:
		sb.WriteString(node.Label)
	case LineBreak:
		sb.WriteByte(' ')
	case InvalidSpan:
		if node.Fallback != nil {
			writeText(sb, node.Fallback)
		}
	case Reference:
		if c, ok := s.(SpanContainer); ok {
			for _, child := range c.Spans() {
				writeText(sb, child)
			}
			return
		}
		sb.WriteString(node.SourceText().Text)
	case SpanContainer:
		for _, child := range node.Spans() {
			writeText(sb, child)
		}
	}
}
