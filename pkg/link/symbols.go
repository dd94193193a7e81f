package link

import "strings"

// footnoteSymbols is the base cycle of autosymbol labels.
var footnoteSymbols = []string{"*", "†", "‡", "§", "¶", "#", "♠", "♥", "♦", "♣"}

// FootnoteSymbol returns the label of the n-th autosymbol footnote, starting
// at 1. After the base cycle is exhausted each symbol repeats doubled, then
// tripled, and so on.
func FootnoteSymbol(n int) string {
	if n < 1 {
		n = 1
	}
	idx := n - 1
	return strings.Repeat(footnoteSymbols[idx%len(footnoteSymbols)], idx/len(footnoteSymbols)+1)
}
