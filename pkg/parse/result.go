package parse

import (
	"fmt"
	"strconv"
)

// Message produces a failure message for the context a parser failed at.
// Messages are evaluated only when a caller asks for them, since almost every
// failure is discarded during backtracking.
type Message func(Context) string

// Messagef returns a Message formatting its arguments on demand.
func Messagef(format string, args ...any) Message {
	return func(Context) string {
		return fmt.Sprintf(format, args...)
	}
}

// Expected returns a Message of the form "expected X but found Y".
func Expected(what string) Message {
	return func(ctx Context) string {
		return fmt.Sprintf("expected %s but found %s", what, describeInput(ctx))
	}
}

func describeInput(ctx Context) string {
	if ctx.AtEnd() {
		return "end of input"
	}
	return strconv.QuoteRune(ctx.Char())
}

// Result is the outcome of applying a Parser: either a value plus the
// context after it, or a failure message plus the context it failed at.
type Result[T any] struct {
	value T
	next  Context
	msg   Message
}

// Success returns a successful result.
func Success[T any](value T, next Context) Result[T] {
	return Result[T]{value: value, next: next}
}

// Failure returns a failed result. A nil message is replaced by a generic one.
func Failure[T any](msg Message, at Context) Result[T] {
	if msg == nil {
		msg = Messagef("parser failed")
	}
	return Result[T]{next: at, msg: msg}
}

// OK reports whether the result is a success.
func (r Result[T]) OK() bool {
	return r.msg == nil
}

// Value returns the parsed value; the zero value for failures.
func (r Result[T]) Value() T {
	return r.value
}

// Next returns the context after a success, or the failure context.
func (r Result[T]) Next() Context {
	return r.next
}

// Message evaluates the failure message. Returns "" for successes.
func (r Result[T]) Message() string {
	if r.msg == nil {
		return ""
	}
	return r.msg(r.next)
}

// Error formats the failure with its position, for reporting.
func (r Result[T]) Error() string {
	if r.msg == nil {
		return ""
	}
	pos := r.next.Position()
	return fmt.Sprintf("[%d:%d] %s", pos.Line, pos.Column, r.Message())
}

// Propagate converts a failure to another value type, keeping its context
// and its unevaluated message. It must only be called on failures.
func Propagate[T, U any](r Result[U]) Result[T] {
	return Result[T]{next: r.next, msg: r.msg}
}
