// Package parse provides the parser combinator core used by the markup
// front-ends: an immutable input cursor with line/column tracking, a generic
// Parser type with its combinators, prefix-dispatch tables and delimited text
// scanning.
package parse

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// Source is an immutable view over one input text.
// Line starts are computed on first use and shared by every Context over it.
type Source struct {
	input    string
	reversed bool

	linesOnce  sync.Once
	lineStarts []int

	reverseOnce sync.Once
	reverse     *Source
}

// NewSource creates a source for the given input text.
func NewSource(input string) *Source {
	return &Source{input: input}
}

// Input returns the full source text.
func (s *Source) Input() string {
	return s.input
}

// Len returns the length of the source in bytes.
func (s *Source) Len() int {
	return len(s.input)
}

// Position is a 1-based line and column in a Source.
// Column counts bytes, not runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// LineStarts returns the offsets at which each line starts.
// The first entry is always 0; the last entry is the source length.
func (s *Source) LineStarts() []int {
	s.linesOnce.Do(func() {
		starts := []int{0}
		for idx := 0; idx < len(s.input); idx++ {
			if s.input[idx] == '\n' {
				starts = append(starts, idx+1)
			}
		}
		if starts[len(starts)-1] != len(s.input) {
			starts = append(starts, len(s.input))
		}
		s.lineStarts = starts
	})
	return s.lineStarts
}

// Position converts a byte offset to a line and column.
// Offsets of a reversed source are mapped back to the original text.
func (s *Source) Position(offset int) Position {
	if s.reversed {
		return s.reverse.Position(len(s.input) - offset)
	}
	offset = max(0, min(offset, len(s.input)))

	starts := s.LineStarts()
	// Index of the last line start <= offset.
	lineIdx := sort.Search(len(starts), func(i int) bool {
		return starts[i] > offset
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	// The trailing sentinel equals len(input) and is not a line of its own
	// unless the input ends with a newline.
	if lineIdx == len(starts)-1 && lineIdx > 0 && offset == len(s.input) && s.input[len(s.input)-1] != '\n' {
		lineIdx--
	}

	return Position{
		Offset: offset,
		Line:   lineIdx + 1,
		Column: offset - starts[lineIdx] + 1,
	}
}

// Line returns the content of a 1-based line number, excluding the newline.
// Returns an empty string if the line number is out of range.
func (s *Source) Line(line int) string {
	starts := s.LineStarts()
	if line < 1 || line > len(starts)-1 {
		return ""
	}
	text := s.input[starts[line-1]:starts[line]]
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
		if n := len(text); n > 0 && text[n-1] == '\r' {
			text = text[:n-1]
		}
	}
	return text
}

// Reversed returns the source with its runes in reverse order.
// A rune starting at offset o with width w in s starts at Len()-o-w in the
// reversed source, so a Context at offset o maps to Len()-o.
func (s *Source) Reversed() *Source {
	if s.reversed {
		return s.reverse
	}
	s.reverseOnce.Do(func() {
		buf := make([]byte, len(s.input))
		pos := len(buf)
		for idx := 0; idx < len(s.input); {
			_, width := utf8.DecodeRuneInString(s.input[idx:])
			pos -= width
			copy(buf[pos:], s.input[idx:idx+width])
			idx += width
		}
		s.reverse = &Source{input: string(buf), reversed: true, reverse: s}
	})
	return s.reverse
}
