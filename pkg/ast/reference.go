package ast

import (
	"fmt"
	"strconv"
)

// Reference is an unresolved reference span. Link resolution replaces every
// reference with a resolved span or an InvalidSpan, so renderers never see
// one.
type Reference interface {
	Span
	// SourceText returns the original markup of the reference, used as
	// fallback rendering when it cannot be resolved.
	SourceText() Source
	reference()
}

// LinkIDReference refers to a link definition or target by id.
// An empty ID refers to the next anonymous link definition.
type LinkIDReference struct {
	Content []Span
	ID      string
	Source  Source
	Options
}

// ImageIDReference refers to an image through a link definition.
type ImageIDReference struct {
	Alt    string
	ID     string
	Source Source
	Options
}

// FootnoteReference refers to a footnote definition.
type FootnoteReference struct {
	Label  FootnoteLabel
	Source Source
	Options
}

// CitationReference refers to a citation.
type CitationReference struct {
	Label  string
	Source Source
	Options
}

// PathReference refers to a document or a fragment of a document by path,
// relative to the referencing document.
type PathReference struct {
	Content []Span
	Path    string
	Title   string
	Source  Source
	Options
}

func (LinkIDReference) element()   {}
func (ImageIDReference) element()  {}
func (FootnoteReference) element() {}
func (CitationReference) element() {}
func (PathReference) element()     {}

func (LinkIDReference) span()   {}
func (ImageIDReference) span()  {}
func (FootnoteReference) span() {}
func (CitationReference) span() {}
func (PathReference) span()     {}

func (LinkIDReference) reference()   {}
func (ImageIDReference) reference()  {}
func (FootnoteReference) reference() {}
func (CitationReference) reference() {}
func (PathReference) reference()     {}

func (s LinkIDReference) SourceText() Source   { return s.Source }
func (s ImageIDReference) SourceText() Source  { return s.Source }
func (s FootnoteReference) SourceText() Source { return s.Source }
func (s CitationReference) SourceText() Source { return s.Source }
func (s PathReference) SourceText() Source     { return s.Source }

func (s LinkIDReference) withOptions(o Options) Span   { s.Options = o; return s }
func (s ImageIDReference) withOptions(o Options) Span  { s.Options = o; return s }
func (s FootnoteReference) withOptions(o Options) Span { s.Options = o; return s }
func (s CitationReference) withOptions(o Options) Span { s.Options = o; return s }
func (s PathReference) withOptions(o Options) Span     { s.Options = o; return s }

// Spans returns the link text.
func (s LinkIDReference) Spans() []Span {
	return s.Content
}

// WithSpans returns a copy with the link text replaced.
func (s LinkIDReference) WithSpans(spans []Span) Element {
	s.Content = spans
	return s
}

// Spans returns the link text.
func (s PathReference) Spans() []Span {
	return s.Content
}

// WithSpans returns a copy with the link text replaced.
func (s PathReference) WithSpans(spans []Span) Element {
	s.Content = spans
	return s
}

// Target is the destination of a resolved link or image.
type Target interface {
	fmt.Stringer
	target()
}

// ExternalTarget is a URL outside the document tree.
type ExternalTarget struct {
	URL string
}

// InternalTarget is a path inside the document tree.
type InternalTarget struct {
	// Path is the absolute target path, including any fragment.
	Path Path

	// Relative is Path relative to the referencing document.
	Relative string

	// Validated reports whether the target was checked to exist.
	Validated bool
}

func (ExternalTarget) target() {}
func (InternalTarget) target() {}

func (t ExternalTarget) String() string { return t.URL }
func (t InternalTarget) String() string { return t.Relative }

// FootnoteLabel is the label of a footnote definition or reference.
type FootnoteLabel interface {
	fmt.Stringer
	footnoteLabel()
}

// Autonumber is a footnote label numbered automatically.
type Autonumber struct{}

// Autosymbol is a footnote label assigned the next symbol automatically.
type Autosymbol struct{}

// AutonumberLabel is an automatically numbered label that can also be
// referenced by name.
type AutonumberLabel struct {
	Label string
}

// NumericLabel is an explicit numeric label.
type NumericLabel struct {
	Number int
}

func (Autonumber) footnoteLabel()      {}
func (Autosymbol) footnoteLabel()      {}
func (AutonumberLabel) footnoteLabel() {}
func (NumericLabel) footnoteLabel()    {}

func (Autonumber) String() string        { return "#" }
func (Autosymbol) String() string        { return "*" }
func (l AutonumberLabel) String() string { return "#" + l.Label }
func (l NumericLabel) String() string    { return strconv.Itoa(l.Number) }
