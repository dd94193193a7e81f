package parse

import "sync"

// Parser is a pure function from a Context to a Result.
// Applying a parser twice to the same context yields the same result, which
// is what makes backtracking through Or correct.
type Parser[T any] func(Context) Result[T]

// Unit is the value type of parsers that only match.
type Unit = struct{}

// Pair holds the values of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Option is the result of an optional parser.
type Option[T any] struct {
	Value T
	Valid bool
}

// Parse applies the parser to ctx.
func (p Parser[T]) Parse(ctx Context) Result[T] {
	return p(ctx)
}

// ParseString applies the parser to the start of input.
func (p Parser[T]) ParseString(input string) Result[T] {
	return p(NewContext(input))
}

// Or tries p and then each alternative against the original context,
// returning the first success. The failure of the last alternative is kept.
func (p Parser[T]) Or(alts ...Parser[T]) Parser[T] {
	return func(ctx Context) Result[T] {
		res := p(ctx)
		for _, alt := range alts {
			if res.OK() {
				return res
			}
			res = alt(ctx)
		}
		return res
	}
}

// Filter fails when pred rejects the parsed value.
func (p Parser[T]) Filter(pred func(T) bool, msg func(T) string) Parser[T] {
	return func(ctx Context) Result[T] {
		res := p(ctx)
		if !res.OK() || pred(res.value) {
			return res
		}
		value := res.value
		return Failure[T](func(Context) string { return msg(value) }, ctx)
	}
}

// WithFailureMessage replaces the failure message of p.
func (p Parser[T]) WithFailureMessage(msg Message) Parser[T] {
	return func(ctx Context) Result[T] {
		res := p(ctx)
		if res.OK() {
			return res
		}
		return Failure[T](msg, res.next)
	}
}

// Source returns the input consumed by p instead of its value.
func (p Parser[T]) Source() Parser[string] {
	return func(ctx Context) Result[string] {
		res := p(ctx)
		if !res.OK() {
			return Propagate[string](res)
		}
		return Success(ctx.Slice(res.next), res.next)
	}
}

// Nested applies p at one nest level deeper, restoring the caller's
// level in the resulting context.
func (p Parser[T]) Nested() Parser[T] {
	return func(ctx Context) Result[T] {
		res := p(ctx.WithNestLevel(ctx.NestLevel() + 1))
		res.next = res.next.WithNestLevel(ctx.NestLevel())
		return res
	}
}

// Succeed returns a parser that always succeeds with value, consuming nothing.
func Succeed[T any](value T) Parser[T] {
	return func(ctx Context) Result[T] {
		return Success(value, ctx)
	}
}

// Fail returns a parser that always fails with msg.
func Fail[T any](msg string) Parser[T] {
	return func(ctx Context) Result[T] {
		return Failure[T](Messagef("%s", msg), ctx)
	}
}

// Lazy defers construction of a parser until its first use, for recursive
// grammars.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	var (
		once   sync.Once
		parser Parser[T]
	)
	return func(ctx Context) Result[T] {
		once.Do(func() { parser = build() })
		return parser(ctx)
	}
}

// Map transforms the value of a successful parse.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(ctx Context) Result[U] {
		res := p(ctx)
		if !res.OK() {
			return Propagate[U](res)
		}
		return Success(f(res.value), res.next)
	}
}

// As replaces the value of a successful parse.
func As[T, U any](p Parser[T], value U) Parser[U] {
	return Map(p, func(T) U { return value })
}

// FlatMap chooses the next parser based on the value of p.
func FlatMap[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return func(ctx Context) Result[U] {
		res := p(ctx)
		if !res.OK() {
			return Propagate[U](res)
		}
		return f(res.value)(res.next)
	}
}

// Seq applies a and then b, pairing their values.
func Seq[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return func(ctx Context) Result[Pair[A, B]] {
		ra := a(ctx)
		if !ra.OK() {
			return Propagate[Pair[A, B]](ra)
		}
		rb := b(ra.next)
		if !rb.OK() {
			return Propagate[Pair[A, B]](rb)
		}
		return Success(Pair[A, B]{First: ra.value, Second: rb.value}, rb.next)
	}
}

// Then applies a and then b, keeping the value of b.
func Then[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return func(ctx Context) Result[B] {
		ra := a(ctx)
		if !ra.OK() {
			return Propagate[B](ra)
		}
		return b(ra.next)
	}
}

// Before applies a and then b, keeping the value of a.
func Before[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return func(ctx Context) Result[A] {
		ra := a(ctx)
		if !ra.OK() {
			return ra
		}
		rb := b(ra.next)
		if !rb.OK() {
			return Propagate[A](rb)
		}
		return Success(ra.value, rb.next)
	}
}

// Between applies open, p and close, keeping the value of p.
func Between[A, T, B any](open Parser[A], p Parser[T], closing Parser[B]) Parser[T] {
	return Before(Then(open, p), closing)
}

// Opt never fails. It produces an invalid Option without consuming input
// when p fails.
func Opt[T any](p Parser[T]) Parser[Option[T]] {
	return func(ctx Context) Result[Option[T]] {
		res := p(ctx)
		if !res.OK() {
			return Success(Option[T]{}, ctx)
		}
		return Success(Option[T]{Value: res.value, Valid: true}, res.next)
	}
}

// Not succeeds without consuming input if and only if p fails.
func Not[T any](p Parser[T]) Parser[Unit] {
	return func(ctx Context) Result[Unit] {
		if p(ctx).OK() {
			return Failure[Unit](Messagef("unexpected match"), ctx)
		}
		return Success(Unit{}, ctx)
	}
}

// LookAhead applies p without consuming input.
func LookAhead[T any](p Parser[T]) Parser[T] {
	return func(ctx Context) Result[T] {
		res := p(ctx)
		if !res.OK() {
			return res
		}
		return Success(res.value, ctx)
	}
}

// LookBehind applies p at offset bytes before the current position without
// consuming input. It fails if that position lies before the start of input.
func LookBehind[T any](offset int, p Parser[T]) Parser[T] {
	if offset < 0 {
		panic("parse: negative look-behind offset")
	}
	return func(ctx Context) Result[T] {
		if offset > ctx.Offset() {
			return Failure[T](Messagef("unable to look behind %d bytes at offset %d", offset, ctx.Offset()), ctx)
		}
		res := p(ctx.Consume(-offset))
		if !res.OK() {
			return Failure[T](res.msg, ctx)
		}
		return Success(res.value, ctx)
	}
}

// ConsumeAll succeeds only when p succeeds and reaches the end of input.
func ConsumeAll[T any](p Parser[T]) Parser[T] {
	return func(ctx Context) Result[T] {
		res := p(ctx)
		if !res.OK() {
			return res
		}
		if !res.next.AtEnd() {
			return Failure[T](Messagef("expected end of input"), res.next)
		}
		return res
	}
}
