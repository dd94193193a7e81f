// Package ast defines the immutable document tree produced by the markup
// parsers and consumed by link resolution and the renderers.
//
// Nodes are values. Rewriting a tree always produces new nodes; unchanged
// subtrees are shared between the old and the new tree.
package ast

import "slices"

// Options carries the identity and style metadata every node has.
type Options struct {
	// ID is the explicit or derived identifier, used as a link target.
	ID string

	// Styles are style names for CSS-like styling.
	Styles []string
}

// Opts returns the options.
func (o Options) Opts() Options {
	return o
}

// WithID returns a copy with the given id.
func (o Options) WithID(id string) Options {
	o.ID = id
	return o
}

// WithStyles returns a copy with the given styles appended.
func (o Options) WithStyles(styles ...string) Options {
	o.Styles = append(slices.Clone(o.Styles), styles...)
	return o
}

// HasStyle reports whether style is one of the node's styles.
func (o Options) HasStyle(style string) bool {
	return slices.Contains(o.Styles, style)
}

// Merge returns o with the id and styles of other applied on top.
func (o Options) Merge(other Options) Options {
	if other.ID != "" {
		o.ID = other.ID
	}
	return o.WithStyles(other.Styles...)
}

// Element is any node of the document tree.
type Element interface {
	Opts() Options
	element()
}

// Block is a block-level node.
type Block interface {
	Element
	block()
	withOptions(Options) Block
}

// Span is an inline node.
type Span interface {
	Element
	span()
	withOptions(Options) Span
}

// BlockContainer is a node holding child blocks.
type BlockContainer interface {
	Element
	Blocks() []Block
	WithBlocks([]Block) Element
}

// SpanContainer is a node holding child spans.
type SpanContainer interface {
	Element
	Spans() []Span
	WithSpans([]Span) Element
}

// WithBlockOptions returns b with its options replaced.
func WithBlockOptions(b Block, opts Options) Block {
	return b.withOptions(opts)
}

// WithSpanOptions returns s with its options replaced.
func WithSpanOptions(s Span, opts Options) Span {
	return s.withOptions(opts)
}

// WithID returns e with the given id. Elements that are neither blocks nor
// spans are returned unchanged.
func WithID[E Element](e E, id string) E {
	switch node := any(e).(type) {
	case Block:
		if out, ok := node.withOptions(node.Opts().WithID(id)).(E); ok {
			return out
		}
	case Span:
		if out, ok := node.withOptions(node.Opts().WithID(id)).(E); ok {
			return out
		}
	}
	return e
}
