package ast

// Paragraph is a block of spans.
type Paragraph struct {
	Content []Span
	Options
}

// Header is a section title with a resolved level.
type Header struct {
	Level   int
	Content []Span
	Options
}

// HeaderDecoration describes the adornment of a decorated header.
type HeaderDecoration struct {
	Char     rune
	Overline bool
}

// DecoratedHeader is a header whose level is not known at parse time.
// Levels are assigned by order of first appearance of each decoration.
type DecoratedHeader struct {
	Decoration HeaderDecoration
	Content    []Span
	Options
}

// BlockSequence groups blocks without adding semantics of its own.
type BlockSequence struct {
	Content []Block
	Options
}

// QuotedBlock is an indented or quoted block.
type QuotedBlock struct {
	Content []Block
	Options
}

// List is a bullet or enumerated list of ListItem blocks.
type List struct {
	Ordered bool
	Start   int
	Items   []Block
	Options
}

// ListItem is one item of a List.
type ListItem struct {
	Content []Block
	Options
}

// CodeBlock is a literal block with an optional language.
type CodeBlock struct {
	Language string
	Code     string
	Options
}

// Comment is a comment that renderers omit.
type Comment struct {
	Text string
	Options
}

// Rule is a horizontal rule or transition.
type Rule struct {
	Options
}

// Citation defines a citation target.
type Citation struct {
	Label   string
	Content []Block
	Options
}

// FootnoteDefinition defines a footnote whose display label is not yet known.
type FootnoteDefinition struct {
	Label   FootnoteLabel
	Content []Block
	Options
}

// Footnote is a resolved footnote with its final display label.
type Footnote struct {
	Label   string
	Content []Block
	Options
}

// ExternalLinkDefinition defines a named or anonymous external link target.
type ExternalLinkDefinition struct {
	ID    string
	URL   string
	Title string
	Options
}

// InternalLinkDefinition defines a named or anonymous link to a path in the
// document tree, relative to the defining document.
type InternalLinkDefinition struct {
	ID    string
	Path  string
	Title string
	Options
}

// LinkAlias points the id it defines at another link id.
type LinkAlias struct {
	ID     string
	Target string
	Options
}

// InternalLinkTarget is an anchor with no content of its own.
type InternalLinkTarget struct {
	Options
}

func (Paragraph) element()              {}
func (Header) element()                 {}
func (DecoratedHeader) element()        {}
func (BlockSequence) element()          {}
func (QuotedBlock) element()            {}
func (List) element()                   {}
func (ListItem) element()               {}
func (CodeBlock) element()              {}
func (Comment) element()                {}
func (Rule) element()                   {}
func (Citation) element()               {}
func (FootnoteDefinition) element()     {}
func (Footnote) element()               {}
func (ExternalLinkDefinition) element() {}
func (InternalLinkDefinition) element() {}
func (LinkAlias) element()              {}
func (InternalLinkTarget) element()     {}

func (Paragraph) block()              {}
func (Header) block()                 {}
func (DecoratedHeader) block()        {}
func (BlockSequence) block()          {}
func (QuotedBlock) block()            {}
func (List) block()                   {}
func (ListItem) block()               {}
func (CodeBlock) block()              {}
func (Comment) block()                {}
func (Rule) block()                   {}
func (Citation) block()               {}
func (FootnoteDefinition) block()     {}
func (Footnote) block()               {}
func (ExternalLinkDefinition) block() {}
func (InternalLinkDefinition) block() {}
func (LinkAlias) block()              {}
func (InternalLinkTarget) block()     {}

func (b Paragraph) withOptions(o Options) Block              { b.Options = o; return b }
func (b Header) withOptions(o Options) Block                 { b.Options = o; return b }
func (b DecoratedHeader) withOptions(o Options) Block        { b.Options = o; return b }
func (b BlockSequence) withOptions(o Options) Block          { b.Options = o; return b }
func (b QuotedBlock) withOptions(o Options) Block            { b.Options = o; return b }
func (b List) withOptions(o Options) Block                   { b.Options = o; return b }
func (b ListItem) withOptions(o Options) Block               { b.Options = o; return b }
func (b CodeBlock) withOptions(o Options) Block              { b.Options = o; return b }
func (b Comment) withOptions(o Options) Block                { b.Options = o; return b }
func (b Rule) withOptions(o Options) Block                   { b.Options = o; return b }
func (b Citation) withOptions(o Options) Block               { b.Options = o; return b }
func (b FootnoteDefinition) withOptions(o Options) Block     { b.Options = o; return b }
func (b Footnote) withOptions(o Options) Block               { b.Options = o; return b }
func (b ExternalLinkDefinition) withOptions(o Options) Block { b.Options = o; return b }
func (b InternalLinkDefinition) withOptions(o Options) Block { b.Options = o; return b }
func (b LinkAlias) withOptions(o Options) Block              { b.Options = o; return b }
func (b InternalLinkTarget) withOptions(o Options) Block     { b.Options = o; return b }

// Spans returns the content.
func (b Paragraph) Spans() []Span {
	return b.Content
}

// WithSpans returns a copy with the content replaced.
func (b Paragraph) WithSpans(spans []Span) Element {
	b.Content = spans
	return b
}

// Spans returns the content.
func (b Header) Spans() []Span {
	return b.Content
}

// WithSpans returns a copy with the content replaced.
func (b Header) WithSpans(spans []Span) Element {
	b.Content = spans
	return b
}

// Spans returns the content.
func (b DecoratedHeader) Spans() []Span {
	return b.Content
}

// WithSpans returns a copy with the content replaced.
func (b DecoratedHeader) WithSpans(spans []Span) Element {
	b.Content = spans
	return b
}

// Blocks returns the content.
func (b BlockSequence) Blocks() []Block {
	return b.Content
}

// WithBlocks returns a copy with the content replaced.
func (b BlockSequence) WithBlocks(blocks []Block) Element {
	b.Content = blocks
	return b
}

// Blocks returns the content.
func (b QuotedBlock) Blocks() []Block {
	return b.Content
}

// WithBlocks returns a copy with the content replaced.
func (b QuotedBlock) WithBlocks(blocks []Block) Element {
	b.Content = blocks
	return b
}

// Blocks returns the items.
func (b List) Blocks() []Block {
	return b.Items
}

// WithBlocks returns a copy with the items replaced.
func (b List) WithBlocks(blocks []Block) Element {
	b.Items = blocks
	return b
}

// Blocks returns the content.
func (b ListItem) Blocks() []Block {
	return b.Content
}

// WithBlocks returns a copy with the content replaced.
func (b ListItem) WithBlocks(blocks []Block) Element {
	b.Content = blocks
	return b
}

// Blocks returns the content.
func (b Citation) Blocks() []Block {
	return b.Content
}

// WithBlocks returns a copy with the content replaced.
func (b Citation) WithBlocks(blocks []Block) Element {
	b.Content = blocks
	return b
}

// Blocks returns the content.
func (b FootnoteDefinition) Blocks() []Block {
	return b.Content
}

// WithBlocks returns a copy with the content replaced.
func (b FootnoteDefinition) WithBlocks(blocks []Block) Element {
	b.Content = blocks
	return b
}

// Blocks returns the content.
func (b Footnote) Blocks() []Block {
	return b.Content
}

// WithBlocks returns a copy with the content replaced.
func (b Footnote) WithBlocks(blocks []Block) Element {
	b.Content = blocks
	return b
}
