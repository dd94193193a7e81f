package parse

import "fmt"

// PrefixedParser pairs a Parser with the set of runes a match can start with.
// The set is a promise by the parser author: the parser never succeeds at a
// position whose current rune is outside it.
type PrefixedParser[T any] struct {
	start  CharSet
	parser Parser[T]
}

// Prefixed declares the start runes of p.
func Prefixed[T any](start CharSet, p Parser[T]) PrefixedParser[T] {
	return PrefixedParser[T]{start: start, parser: p}
}

// StartChars returns the runes a match can start with.
func (pp PrefixedParser[T]) StartChars() CharSet {
	return pp.start
}

// Parse applies the parser if the current rune is a declared start rune.
func (pp PrefixedParser[T]) Parse(ctx Context) Result[T] {
	if !pp.start.Contains(ctx.Char()) {
		return Failure[T](expectedOneOf(pp.start), ctx)
	}
	return pp.parser(ctx)
}

// Parser returns pp as a plain Parser guarded by its start set.
func (pp PrefixedParser[T]) Parser() Parser[T] {
	return pp.Parse
}

// Or combines two prefixed parsers; the start sets are joined.
func (pp PrefixedParser[T]) Or(other PrefixedParser[T]) PrefixedParser[T] {
	return PrefixedParser[T]{
		start:  pp.start.Union(other.start),
		parser: pp.Parser().Or(other.Parser()),
	}
}

// MapPrefixed transforms the value of a prefixed parser, keeping its prefix.
func MapPrefixed[T, U any](pp PrefixedParser[T], f func(T) U) PrefixedParser[U] {
	return PrefixedParser[U]{start: pp.start, parser: Map(pp.parser, f)}
}

// ThenPrefixed sequences a prefixed parser with any parser, keeping the
// prefix of the first and the value of the second.
func ThenPrefixed[A, B any](pp PrefixedParser[A], next Parser[B]) PrefixedParser[B] {
	return PrefixedParser[B]{start: pp.start, parser: Then(pp.parser, next)}
}

// DispatchTable maps start runes to the parsers that may begin a match there.
// Parsers registered for the same rune are tried in registration order.
type DispatchTable[T any] struct {
	entries map[rune][]Parser[T]
	start   CharSet
}

// NewDispatchTable builds a table from prefixed parsers. A parser with an
// empty start set can never be dispatched to, which is a grammar defect.
func NewDispatchTable[T any](parsers ...PrefixedParser[T]) DispatchTable[T] {
	table := DispatchTable[T]{entries: make(map[rune][]Parser[T])}
	var all []rune
	for idx, pp := range parsers {
		if pp.start.IsEmpty() {
			panic(fmt.Sprintf("parse: prefixed parser %d declares no start characters", idx))
		}
		if pp.parser == nil {
			panic(fmt.Sprintf("parse: prefixed parser %d is nil", idx))
		}
		for _, r := range pp.start.runes {
			table.entries[r] = append(table.entries[r], pp.parser)
		}
		all = append(all, pp.start.runes...)
	}
	table.start = NewCharSet(all...)
	return table
}

// MergeTables unions the given tables. For a rune present in several
// tables, the parsers of earlier tables are tried before those of later
// tables; callers pass extension tables before core tables.
func MergeTables[T any](tables ...DispatchTable[T]) DispatchTable[T] {
	merged := DispatchTable[T]{entries: make(map[rune][]Parser[T])}
	for _, table := range tables {
		for _, r := range table.start.runes {
			merged.entries[r] = append(merged.entries[r], table.entries[r]...)
		}
		merged.start = merged.start.Union(table.start)
	}
	return merged
}

// StartChars returns every rune with at least one registered parser.
func (t DispatchTable[T]) StartChars() CharSet {
	return t.start
}

// Lookup returns the parsers registered for r, in precedence order.
func (t DispatchTable[T]) Lookup(r rune) []Parser[T] {
	return t.entries[r]
}

// Len returns the number of runes with registered parsers.
func (t DispatchTable[T]) Len() int {
	return len(t.entries)
}

// Parser returns a parser that dispatches on the current rune.
// Prefixed parsers registered for that rune are always tried first; the
// unprefixed fallbacks are tried only after all of them failed or when no
// parser is registered for the rune.
func (t DispatchTable[T]) Parser(fallbacks ...Parser[T]) Parser[T] {
	return func(ctx Context) Result[T] {
		var last Result[T]
		tried := false
		if !ctx.AtEnd() {
			for _, p := range t.entries[ctx.Char()] {
				res := p(ctx)
				if res.OK() {
					return res
				}
				last, tried = res, true
			}
		}
		for _, p := range fallbacks {
			res := p(ctx)
			if res.OK() {
				return res
			}
			last, tried = res, true
		}
		if !tried {
			return Failure[T](expectedOneOf(t.start), ctx)
		}
		return last
	}
}

// expectedOneOf defers rendering the start set until the message is read.
func expectedOneOf(start CharSet) Message {
	return func(ctx Context) string {
		return Expected("one of " + start.String())(ctx)
	}
}
