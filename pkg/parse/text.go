package parse

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Literal matches the exact string s.
func Literal(s string) PrefixedParser[string] {
	if s == "" {
		panic("parse: empty literal")
	}
	first, _ := utf8.DecodeRuneInString(s)
	quoted := "'" + s + "'"
	return Prefixed(NewCharSet(first), func(ctx Context) Result[string] {
		if strings.HasPrefix(ctx.Remaining(), s) {
			return Success(s, ctx.Consume(len(s)))
		}
		return Failure[string](Expected(quoted), ctx)
	})
}

// OneOf matches a single rune from chars.
func OneOf(chars ...rune) PrefixedParser[string] {
	set := NewCharSet(chars...)
	return Prefixed(set, Chars(set.Contains, 1, 1))
}

// SomeOf matches one or more runes from chars.
func SomeOf(chars ...rune) PrefixedParser[string] {
	set := NewCharSet(chars...)
	return Prefixed(set, Chars(set.Contains, 1, -1))
}

// AnyOf matches zero or more runes from chars.
func AnyOf(chars ...rune) Parser[string] {
	set := NewCharSet(chars...)
	return Chars(set.Contains, 0, -1)
}

// AnyNot matches zero or more runes not in chars.
func AnyNot(chars ...rune) Parser[string] {
	set := NewCharSet(chars...)
	return Chars(func(r rune) bool { return !set.Contains(r) }, 0, -1)
}

// SomeNot matches one or more runes not in chars.
func SomeNot(chars ...rune) Parser[string] {
	set := NewCharSet(chars...)
	return Chars(func(r rune) bool { return !set.Contains(r) }, 1, -1)
}

// AnyWhile matches zero or more runes satisfying pred.
func AnyWhile(pred func(rune) bool) Parser[string] {
	return Chars(pred, 0, -1)
}

// SomeWhile matches one or more runes satisfying pred.
func SomeWhile(pred func(rune) bool) Parser[string] {
	return Chars(pred, 1, -1)
}

// Chars matches between minCount and maxCount runes satisfying pred.
// A negative maxCount means no upper bound.
func Chars(pred func(rune) bool, minCount, maxCount int) Parser[string] {
	return func(ctx Context) Result[string] {
		input := ctx.Remaining()
		count, end := 0, 0
		for end < len(input) && (maxCount < 0 || count < maxCount) {
			r, width := utf8.DecodeRuneInString(input[end:])
			if !pred(r) {
				break
			}
			end += width
			count++
		}
		if count < minCount {
			return Failure[string](func(at Context) string {
				return "expected at least " + strconv.Itoa(minCount) + " matching characters but found " + describeInput(at)
			}, ctx.Consume(end))
		}
		return Success(input[:end], ctx.Consume(end))
	}
}

// WS matches zero or more spaces and tabs.
var WS = AnyOf(' ', '\t')

// EOF succeeds without consuming input at end of input.
var EOF Parser[string] = func(ctx Context) Result[string] {
	if ctx.AtEnd() {
		return Success("", ctx)
	}
	return Failure[string](Expected("end of input"), ctx)
}

// Newline matches "\n" or "\r\n".
var Newline Parser[string] = func(ctx Context) Result[string] {
	rest := ctx.Remaining()
	switch {
	case strings.HasPrefix(rest, "\n"):
		return Success("\n", ctx.Consume(1))
	case strings.HasPrefix(rest, "\r\n"):
		return Success("\r\n", ctx.Consume(2))
	}
	return Failure[string](Expected("newline"), ctx)
}

// EOL matches a line break or the end of input.
var EOL = Newline.Or(EOF)

// BlankLine matches a line containing only whitespace, including its line
// break. At end of input it succeeds only if it consumed something.
var BlankLine Parser[string] = func(ctx Context) Result[string] {
	ws := WS(ctx)
	if nl := Newline(ws.next); nl.OK() {
		return Success("", nl.next)
	}
	if ws.next.AtEnd() && ws.next.Offset() > ctx.Offset() {
		return Success("", ws.next)
	}
	return Failure[string](Expected("blank line"), ws.next)
}

// RestOfLine matches the remainder of the current line and its line break,
// producing the text without the break.
var RestOfLine Parser[string] = Before(AnyNot('\n', '\r'), EOL.Or(Literal("\r").Parser()))

// Anything matches all remaining input.
var Anything Parser[string] = func(ctx Context) Result[string] {
	return Success(ctx.Remaining(), ctx.Consume(ctx.RemainingLen()))
}

// IsWordChar reports whether r can be part of a simple word reference.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
