package ast

// Text is plain text.
type Text struct {
	Content string
	Options
}

// Emphasized is emphasized text.
type Emphasized struct {
	Content []Span
	Options
}

// Strong is strongly emphasized text.
type Strong struct {
	Content []Span
	Options
}

// Deleted is struck-through text.
type Deleted struct {
	Content []Span
	Options
}

// Literal is inline code or other verbatim text.
type Literal struct {
	Content string
	Options
}

// SpanSequence groups spans without adding semantics of its own.
type SpanSequence struct {
	Content []Span
	Options
}

// LineBreak is a hard line break.
type LineBreak struct {
	Options
}

// SpanLink is a resolved link.
type SpanLink struct {
	Content []Span
	Target  Target
	Title   string
	Options
}

// Image is a resolved image.
type Image struct {
	Alt    string
	Target Target
	Title  string
	Options
}

// FootnoteLink is a resolved reference to a footnote.
type FootnoteLink struct {
	Ref   string
	Label string
	Options
}

// CitationLink is a resolved reference to a citation.
type CitationLink struct {
	Ref   string
	Label string
	Options
}

func (Text) element()         {}
func (Emphasized) element()   {}
func (Strong) element()       {}
func (Deleted) element()      {}
func (Literal) element()      {}
func (SpanSequence) element() {}
func (LineBreak) element()    {}
func (SpanLink) element()     {}
func (Image) element()        {}
func (FootnoteLink) element() {}
func (CitationLink) element() {}

func (Text) span()         {}
func (Emphasized) span()   {}
func (Strong) span()       {}
func (Deleted) span()      {}
func (Literal) span()      {}
func (SpanSequence) span() {}
func (LineBreak) span()    {}
func (SpanLink) span()     {}
func (Image) span()        {}
func (FootnoteLink) span() {}
func (CitationLink) span() {}

func (s Text) withOptions(o Options) Span         { s.Options = o; return s }
func (s Emphasized) withOptions(o Options) Span   { s.Options = o; return s }
func (s Strong) withOptions(o Options) Span       { s.Options = o; return s }
func (s Deleted) withOptions(o Options) Span      { s.Options = o; return s }
func (s Literal) withOptions(o Options) Span      { s.Options = o; return s }
func (s SpanSequence) withOptions(o Options) Span { s.Options = o; return s }
func (s LineBreak) withOptions(o Options) Span    { s.Options = o; return s }
func (s SpanLink) withOptions(o Options) Span     { s.Options = o; return s }
func (s Image) withOptions(o Options) Span        { s.Options = o; return s }
func (s FootnoteLink) withOptions(o Options) Span { s.Options = o; return s }
func (s CitationLink) withOptions(o Options) Span { s.Options = o; return s }

// Spans returns the content.
func (s Emphasized) Spans() []Span {
	return s.Content
}

// WithSpans returns a copy with the content replaced.
func (s Emphasized) WithSpans(spans []Span) Element {
	s.Content = spans
	return s
}

// Spans returns the content.
func (s Strong) Spans() []Span {
	return s.Content
}

// WithSpans returns a copy with the content replaced.
func (s Strong) WithSpans(spans []Span) Element {
	s.Content = spans
	return s
}

// Spans returns the content.
func (s Deleted) Spans() []Span {
	return s.Content
}

// WithSpans returns a copy with the content replaced.
func (s Deleted) WithSpans(spans []Span) Element {
	s.Content = spans
	return s
}

// Spans returns the content.
func (s SpanSequence) Spans() []Span {
	return s.Content
}

// WithSpans returns a copy with the content replaced.
func (s SpanSequence) WithSpans(spans []Span) Element {
	s.Content = spans
	return s
}

// Spans returns the content.
func (s SpanLink) Spans() []Span {
	return s.Content
}

// WithSpans returns a copy with the content replaced.
func (s SpanLink) WithSpans(spans []Span) Element {
	s.Content = spans
	return s
}
