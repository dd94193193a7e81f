package parse

import (
	"fmt"
	"unicode/utf8"
)

// EOFChar is returned by Context.Char when the context is at end of input.
const EOFChar rune = -1

// Context is an immutable cursor into a Source.
// Every consuming operation returns a new Context; the receiver is never
// modified, so a Context can be retried any number of times.
type Context struct {
	src       *Source
	offset    int
	nestLevel int
}

// NewContext returns a context at the start of the given input.
func NewContext(input string) Context {
	return Context{src: NewSource(input)}
}

// ContextAt returns a context over src positioned at offset.
func ContextAt(src *Source, offset int) Context {
	if offset < 0 || offset > src.Len() {
		panic(fmt.Sprintf("parse: offset %d out of range [0,%d]", offset, src.Len()))
	}
	return Context{src: src, offset: offset}
}

// Source returns the underlying source.
func (c Context) Source() *Source {
	return c.src
}

// Input returns the full source text, including already consumed input.
func (c Context) Input() string {
	return c.src.input
}

// Offset returns the current byte offset.
func (c Context) Offset() int {
	return c.offset
}

// NestLevel returns the recursion depth of nested parser invocations.
func (c Context) NestLevel() int {
	return c.nestLevel
}

// WithNestLevel returns a copy of the context with the given nest level.
func (c Context) WithNestLevel(level int) Context {
	c.nestLevel = level
	return c
}

// Remaining returns the unconsumed input.
func (c Context) Remaining() string {
	return c.src.input[c.offset:]
}

// RemainingLen returns the number of unconsumed bytes.
func (c Context) RemainingLen() int {
	return c.src.Len() - c.offset
}

// AtEnd reports whether all input has been consumed.
func (c Context) AtEnd() bool {
	return c.offset >= c.src.Len()
}

// Char returns the rune at the current offset, or EOFChar at end of input.
func (c Context) Char() rune {
	if c.AtEnd() {
		return EOFChar
	}
	r, _ := utf8.DecodeRuneInString(c.src.input[c.offset:])
	return r
}

// CharAt returns the rune at the given byte distance from the current offset.
// Negative distances look behind. Returns EOFChar when out of range.
func (c Context) CharAt(delta int) rune {
	pos := c.offset + delta
	if pos < 0 || pos >= c.src.Len() {
		return EOFChar
	}
	r, _ := utf8.DecodeRuneInString(c.src.input[pos:])
	return r
}

// PrevChar returns the rune immediately before the current offset,
// or EOFChar at the start of input.
func (c Context) PrevChar() rune {
	if c.offset == 0 {
		return EOFChar
	}
	r, _ := utf8.DecodeLastRuneInString(c.src.input[:c.offset])
	return r
}

// Capture returns up to n bytes of input starting at the current offset.
func (c Context) Capture(n int) string {
	end := min(c.offset+n, c.src.Len())
	return c.src.input[c.offset:end]
}

// Consume returns a context advanced by n bytes.
// Consuming past either end of the input is a grammar defect and panics.
func (c Context) Consume(n int) Context {
	pos := c.offset + n
	if pos < 0 || pos > c.src.Len() {
		panic(fmt.Sprintf("parse: cannot consume %d bytes at offset %d of %d", n, c.offset, c.src.Len()))
	}
	c.offset = pos
	return c
}

// Slice returns the input between the current offset and another context
// over the same source.
func (c Context) Slice(end Context) string {
	if end.offset < c.offset {
		return ""
	}
	return c.src.input[c.offset:end.offset]
}

// Reverse returns a context over the reversed source positioned so that
// reading forward yields the already consumed input backwards.
func (c Context) Reverse() Context {
	rev := c.src.Reversed()
	return Context{src: rev, offset: c.src.Len() - c.offset, nestLevel: c.nestLevel}
}

// Position returns the line and column of the current offset.
func (c Context) Position() Position {
	return c.src.Position(c.offset)
}

// Sub returns a context at the start of a new source for nested parsing.
// The nest level is carried over.
func (c Context) Sub(input string) Context {
	return Context{src: NewSource(input), nestLevel: c.nestLevel}
}

// String implements fmt.Stringer for debugging output.
func (c Context) String() string {
	pos := c.Position()
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}
