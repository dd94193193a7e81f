package parse

import (
	"strings"
	"unicode/utf8"
)

// DelimitedText reads text up to a delimiter.
//
// The delimiter is never part of the produced text. By default it is
// consumed and reaching the end of input without finding it is a failure;
// both behaviors are configurable. DelimitedText values are immutable, each
// option returns a modified copy.
type DelimitedText struct {
	delim     PrefixedParser[string]
	keep      bool
	acceptEOF bool
	nonEmpty  bool
	failOn    CharSet
	escape    Parser[string]
	unescape  bool
}

// Delimited reads text until delim matches.
func Delimited(delim PrefixedParser[string]) DelimitedText {
	return DelimitedText{delim: delim}
}

// DelimitedBy reads text until one of the given strings is found.
func DelimitedBy(delims ...string) DelimitedText {
	if len(delims) == 0 {
		panic("parse: DelimitedBy requires at least one delimiter")
	}
	delim := Literal(delims[0])
	for _, d := range delims[1:] {
		delim = delim.Or(Literal(d))
	}
	return Delimited(delim)
}

// KeepDelimiter leaves the delimiter unconsumed.
func (d DelimitedText) KeepDelimiter() DelimitedText {
	d.keep = true
	return d
}

// AcceptEOF treats the end of input as a valid terminator.
func (d DelimitedText) AcceptEOF() DelimitedText {
	d.acceptEOF = true
	return d
}

// NonEmpty fails when the delimiter is found immediately.
func (d DelimitedText) NonEmpty() DelimitedText {
	d.nonEmpty = true
	return d
}

// FailOn fails when one of chars is found before the delimiter.
func (d DelimitedText) FailOn(chars ...rune) DelimitedText {
	d.failOn = d.failOn.Union(NewCharSet(chars...))
	return d
}

// SkipEscapes makes a backslash followed by a successful esc match opaque to
// the delimiter check. The escape sequence stays in the produced text.
func (d DelimitedText) SkipEscapes(esc Parser[string]) DelimitedText {
	d.escape = esc
	d.unescape = false
	return d
}

// Unescaped is like SkipEscapes but replaces each escape sequence with the
// value of esc in the produced text.
func (d DelimitedText) Unescaped(esc Parser[string]) DelimitedText {
	d.escape = esc
	d.unescape = true
	return d
}

// Parser returns d as a Parser.
func (d DelimitedText) Parser() Parser[string] {
	return d.Parse
}

// Parse reads delimited text at ctx.
func (d DelimitedText) Parse(ctx Context) Result[string] {
	var buf strings.Builder
	cur := ctx
	for {
		if cur.AtEnd() {
			if !d.acceptEOF {
				return Failure[string](Messagef("unexpected end of input, expected delimiter"), cur)
			}
			return d.finish(ctx, cur, cur, &buf)
		}
		r := cur.Char()
		if d.escape != nil && r == '\\' {
			if er := d.escape(cur.Consume(1)); er.OK() {
				if d.unescape {
					buf.WriteString(er.value)
				}
				cur = er.next
				continue
			}
		}
		if d.delim.start.Contains(r) {
			if dr := d.delim.parser(cur); dr.OK() {
				next := dr.next
				if d.keep {
					next = cur
				}
				return d.finish(ctx, cur, next, &buf)
			}
		}
		if d.failOn.Contains(r) {
			return Failure[string](Expected("delimiter"), cur)
		}
		_, width := utf8.DecodeRuneInString(cur.Remaining())
		if d.unescape {
			buf.WriteString(cur.Capture(width))
		}
		cur = cur.Consume(width)
	}
}

func (d DelimitedText) finish(start, end, next Context, buf *strings.Builder) Result[string] {
	text := start.Slice(end)
	if d.unescape {
		text = buf.String()
	}
	if d.nonEmpty && end.Offset() == start.Offset() {
		return Failure[string](Messagef("expected non-empty text"), start)
	}
	return Success(text, next)
}
