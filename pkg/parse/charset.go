package parse

import (
	"slices"
	"strconv"
	"strings"
)

// CharSet is an immutable set of runes.
type CharSet struct {
	runes []rune
}

// NewCharSet returns a set containing the given runes.
func NewCharSet(chars ...rune) CharSet {
	runes := slices.Clone(chars)
	slices.Sort(runes)
	return CharSet{runes: slices.Compact(runes)}
}

// CharsOf returns a set containing every rune of s.
func CharsOf(s string) CharSet {
	return NewCharSet([]rune(s)...)
}

// CharRange returns a set containing the runes from..to inclusive. The set
// is empty when to is below from.
func CharRange(from, to rune) CharSet {
	if to < from {
		return CharSet{}
	}
	runes := make([]rune, 0, to-from+1)
	for r := from; r <= to; r++ {
		runes = append(runes, r)
	}
	return CharSet{runes: runes}
}

// Union returns a set containing the runes of both sets.
func (s CharSet) Union(other CharSet) CharSet {
	return NewCharSet(append(slices.Clone(s.runes), other.runes...)...)
}

// Contains reports whether r is in the set.
func (s CharSet) Contains(r rune) bool {
	_, found := slices.BinarySearch(s.runes, r)
	return found
}

// Len returns the number of runes in the set.
func (s CharSet) Len() int {
	return len(s.runes)
}

// IsEmpty reports whether the set has no runes.
func (s CharSet) IsEmpty() bool {
	return len(s.runes) == 0
}

// Runes returns the members in ascending order.
func (s CharSet) Runes() []rune {
	return slices.Clone(s.runes)
}

func (s CharSet) String() string {
	parts := make([]string, len(s.runes))
	for i, r := range s.runes {
		parts[i] = strconv.QuoteRune(r)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
