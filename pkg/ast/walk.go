package ast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(e Element) error

// ErrStopWalk stops a walk early without reporting an error.
var ErrStopWalk = errors.New("stop walk")

// Walk performs a pre-order traversal over blocks and all their descendant
// blocks and spans. If walkFunc returns ErrStopWalk the walk ends and Walk
// returns nil; any other error is returned as is.
func Walk(blocks []Block, walkFunc WalkFunc) error {
	for _, b := range blocks {
		if err := walkElement(b, walkFunc); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

// WalkSpans is like Walk for a sequence of spans.
func WalkSpans(spans []Span, walkFunc WalkFunc) error {
	for _, s := range spans {
		if err := walkElement(s, walkFunc); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

func walkElement(e Element, walkFunc WalkFunc) error {
	if err := walkFunc(e); err != nil {
		return err
	}
	if c, ok := e.(BlockContainer); ok {
		for _, child := range c.Blocks() {
			if err := walkElement(child, walkFunc); err != nil {
				return err
			}
		}
	}
	if c, ok := e.(SpanContainer); ok {
		for _, child := range c.Spans() {
			if err := walkElement(child, walkFunc); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindAll returns all elements of type E below blocks, in document order.
func FindAll[E Element](blocks []Block) []E {
	var result []E
	_ = Walk(blocks, func(e Element) error {
		if match, ok := e.(E); ok {
			result = append(result, match)
		}
		return nil
	})
	return result
}

// FindFirst returns the first element matching the predicate.
func FindFirst(blocks []Block, predicate func(Element) bool) (Element, bool) {
	var found Element
	_ = Walk(blocks, func(e Element) error {
		if predicate(e) {
			found = e
			return ErrStopWalk
		}
		return nil
	})
	return found, found != nil
}
