package parse

import "unicode/utf8"

// Inline parses a sequence of spans. At each rune registered in the dispatch
// table the table's parsers are tried in precedence order; input no parser
// accepts becomes text. Adjacent text is merged into a single value created
// with the text factory.
type Inline[T any] struct {
	text    func(string) T
	table   DispatchTable[T]
	escape  Parser[string]
	retract func(T) int
}

// NewInline returns an inline parser over the given dispatch table.
func NewInline[T any](text func(string) T, table DispatchTable[T]) Inline[T] {
	return Inline[T]{text: text, table: table}
}

// WithEscape interprets a backslash followed by a successful esc match as
// literal text.
func (in Inline[T]) WithEscape(esc Parser[string]) Inline[T] {
	in.escape = esc
	return in
}

// WithRetract registers a function reporting how many bytes of the text
// immediately preceding a span belong to that span. Those bytes are removed
// from the pending text when the span is accepted; a span claiming more
// text than is pending is rejected.
func (in Inline[T]) WithRetract(f func(T) int) Inline[T] {
	in.retract = f
	return in
}

// Parser returns in as a Parser.
func (in Inline[T]) Parser() Parser[[]T] {
	return in.Parse
}

// Parse consumes all input at ctx. It never fails.
func (in Inline[T]) Parse(ctx Context) Result[[]T] {
	var (
		spans   []T
		pending []byte
	)
	flush := func() {
		if len(pending) > 0 {
			spans = append(spans, in.text(string(pending)))
			pending = pending[:0]
		}
	}

	cur := ctx
	for !cur.AtEnd() {
		r := cur.Char()
		if in.escape != nil && r == '\\' {
			if er := in.escape(cur.Consume(1)); er.OK() {
				pending = append(pending, er.value...)
				cur = er.next
				continue
			}
		}
		if next, value, ok := in.dispatch(cur, len(pending)); ok {
			if in.retract != nil {
				pending = pending[:len(pending)-in.retract(value)]
			}
			flush()
			spans = append(spans, value)
			cur = next
			continue
		}
		_, width := utf8.DecodeRuneInString(cur.Remaining())
		pending = append(pending, cur.Capture(width)...)
		cur = cur.Consume(width)
	}
	flush()
	return Success(spans, cur)
}

func (in Inline[T]) dispatch(cur Context, pendingLen int) (Context, T, bool) {
	for _, p := range in.table.Lookup(cur.Char()) {
		res := p(cur)
		if !res.OK() || res.next.Offset() == cur.Offset() {
			continue
		}
		if in.retract != nil && in.retract(res.value) > pendingLen {
			continue
		}
		return res.next, res.value, true
	}
	var zero T
	return cur, zero, false
}
