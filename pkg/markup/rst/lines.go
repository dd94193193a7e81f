package rst

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/docweave/pkg/parse"
)

// line returns the current line without its break and the context after it.
func line(ctx parse.Context) (string, parse.Context) {
	res := parse.RestOfLine(ctx)
	return res.Value(), res.Next()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func indentOf(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

// indented reads the lines following ctx that are blank or indented by at
// least minIndent spaces. Trailing blank lines are not consumed.
func indented(ctx parse.Context, minIndent int) ([]string, parse.Context) {
	minIndent = max(minIndent, 1)
	var lines []string
	end := ctx
	cur := ctx
	for !cur.AtEnd() {
		text, next := line(cur)
		if !isBlank(text) && indentOf(text) < minIndent {
			break
		}
		lines = append(lines, text)
		cur = next
		if !isBlank(text) {
			end = cur
		}
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines, end
}

// dedent removes the common indentation of the non-blank lines.
func dedent(lines []string) string {
	common := -1
	for _, l := range lines {
		if isBlank(l) {
			continue
		}
		if n := indentOf(l); common < 0 || n < common {
			common = n
		}
	}
	return dedentBy(lines, max(common, 0))
}

// dedentBy removes up to n leading spaces from every line.
func dedentBy(lines []string, n int) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l[min(n, indentOf(l)):]
	}
	return strings.Join(out, "\n")
}

// joinBody joins the first line of a construct with its indented body.
func joinBody(first string, body []string) string {
	first = strings.TrimSpace(first)
	rest := dedent(body)
	switch {
	case first == "":
		return rest
	case rest == "":
		return first
	}
	return first + "\n" + rest
}

// isAdornment reports whether s is a line of one repeated punctuation
// character, returning that character.
func isAdornment(s string) (rune, bool) {
	s = strings.TrimRight(s, " ")
	first, _ := utf8.DecodeRuneInString(s)
	if s == "" || !isAdornmentChar(first) {
		return 0, false
	}
	for _, r := range s {
		if r != first {
			return 0, false
		}
	}
	return first, true
}

func isAdornmentChar(r rune) bool {
	return (r < utf8.RuneSelf && unicode.IsPunct(r)) || strings.ContainsRune("$+<=>^`|~", r)
}

// width returns the display width of s in runes.
func width(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// skipBlank returns the context after any blank lines at ctx.
func skipBlank(ctx parse.Context) parse.Context {
	for {
		res := parse.BlankLine(ctx)
		if !res.OK() {
			return ctx
		}
		ctx = res.Next()
	}
}
