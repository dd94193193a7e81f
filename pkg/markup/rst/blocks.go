package rst

import (
	"strconv"
	"strings"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
	"github.com/yaklabco/docweave/pkg/parse"
)

var adornmentChars = parse.CharsOf("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~")

func blockParsers(rec markup.RecursiveParsers) []parse.PrefixedParser[ast.Block] {
	b := blocks{rec: rec}
	return []parse.PrefixedParser[ast.Block]{
		parse.Prefixed(parse.NewCharSet('.'), b.explicit),
		parse.Prefixed(adornmentChars, b.overlinedHeader),
		parse.Prefixed(adornmentChars, b.transition),
		parse.Prefixed(parse.CharsOf("-*+"), b.bulletList),
		parse.Prefixed(parse.CharRange('0', '9').Union(parse.NewCharSet('#')), b.enumeratedList),
		parse.Prefixed(parse.NewCharSet(' '), b.blockQuote),
	}
}

func fallbackBlocks(rec markup.RecursiveParsers) []parse.Parser[ast.Block] {
	b := blocks{rec: rec}
	return []parse.Parser[ast.Block]{b.underlinedHeader, b.paragraph}
}

type blocks struct {
	rec markup.RecursiveParsers
}

func fail(ctx parse.Context, what string) parse.Result[ast.Block] {
	return parse.Failure[ast.Block](parse.Expected(what), ctx)
}

func (b blocks) overlinedHeader(ctx parse.Context) parse.Result[ast.Block] {
	over, next := line(ctx)
	char, ok := isAdornment(over)
	if !ok {
		return fail(ctx, "section overline")
	}
	title, next := line(next)
	if isBlank(title) || width(over) < width(title) {
		return fail(ctx, "section title")
	}
	under, next := line(next)
	if c, ok := isAdornment(under); !ok || c != char {
		return fail(ctx, "section underline")
	}
	return parse.Success[ast.Block](ast.DecoratedHeader{
		Decoration: ast.HeaderDecoration{Char: char, Overline: true},
		Content:    b.rec.SpansOf(ctx, strings.TrimSpace(title)),
	}, next)
}

func (b blocks) underlinedHeader(ctx parse.Context) parse.Result[ast.Block] {
	title, next := line(ctx)
	if isBlank(title) || indentOf(title) > 0 || next.AtEnd() {
		return fail(ctx, "section title")
	}
	under, after := line(next)
	char, ok := isAdornment(under)
	if !ok || (width(under) < width(title) && width(under) < 4) {
		return fail(ctx, "section underline")
	}
	return parse.Success[ast.Block](ast.DecoratedHeader{
		Decoration: ast.HeaderDecoration{Char: char},
		Content:    b.rec.SpansOf(ctx, strings.TrimSpace(title)),
	}, after)
}

// transition is a line of at least four adornment characters followed by
// a blank line.
func (b blocks) transition(ctx parse.Context) parse.Result[ast.Block] {
	text, next := line(ctx)
	if _, ok := isAdornment(text); !ok || width(text) < 4 {
		return fail(ctx, "transition")
	}
	if !next.AtEnd() {
		if following, _ := line(next); !isBlank(following) {
			return fail(ctx, "blank line after transition")
		}
	}
	return parse.Success[ast.Block](ast.Rule{}, next)
}

func isBulletItem(text string, marker rune) bool {
	return len(text) > 0 && rune(text[0]) == marker && (len(text) == 1 || text[1] == ' ')
}

func (b blocks) bulletList(ctx parse.Context) parse.Result[ast.Block] {
	marker := ctx.Char()
	items, next := b.listItems(ctx, func(text string) (int, bool) {
		return 1, isBulletItem(text, marker)
	})
	if len(items) == 0 {
		return fail(ctx, "bullet list item")
	}
	return parse.Success[ast.Block](ast.List{Items: items}, next)
}

// enumMarker recognizes "1.", "1)" and "#." list markers, returning the
// item number, zero for "#", and the marker width.
func enumMarker(text string) (int, int, bool) {
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	number := 0
	switch {
	case end > 0:
		number, _ = strconv.Atoi(text[:end])
	case strings.HasPrefix(text, "#"):
		end = 1
	default:
		return 0, 0, false
	}
	if end >= len(text) || (text[end] != '.' && text[end] != ')') {
		return 0, 0, false
	}
	end++
	if end < len(text) && text[end] != ' ' {
		return 0, 0, false
	}
	return number, end, true
}

func (b blocks) enumeratedList(ctx parse.Context) parse.Result[ast.Block] {
	first, _ := line(ctx)
	start, _, ok := enumMarker(first)
	if !ok {
		return fail(ctx, "enumerated list item")
	}
	items, next := b.listItems(ctx, func(text string) (int, bool) {
		_, markerWidth, ok := enumMarker(text)
		return markerWidth, ok
	})
	if len(items) == 0 {
		return fail(ctx, "enumerated list item")
	}
	return parse.Success[ast.Block](ast.List{Ordered: true, Start: max(start, 1), Items: items}, next)
}

// listItems reads consecutive items. marker reports whether a line starts
// an item and the width of its marker.
func (b blocks) listItems(ctx parse.Context, marker func(string) (int, bool)) ([]ast.Block, parse.Context) {
	var items []ast.Block
	cur := ctx
	for {
		text, next := line(cur)
		markerWidth, ok := marker(text)
		if !ok {
			break
		}
		first := text[markerWidth:]
		contentIndent := markerWidth + 1
		if !isBlank(first) {
			contentIndent = markerWidth + indentOf(first)
		}
		body, after := indented(next, contentIndent)

		content := strings.TrimSpace(first)
		if len(body) > 0 {
			content = strings.TrimLeft(content+"\n"+dedentBy(body, contentIndent), "\n")
		}
		items = append(items, ast.ListItem{Content: b.rec.BlocksOf(cur, content)})
		cur = after

		peek := skipBlank(cur)
		if peek.AtEnd() {
			break
		}
		if following, _ := line(peek); !isItem(marker, following) {
			break
		}
		cur = peek
	}
	return items, cur
}

func isItem(marker func(string) (int, bool), text string) bool {
	_, ok := marker(text)
	return ok
}

func (b blocks) blockQuote(ctx parse.Context) parse.Result[ast.Block] {
	lines, next := indented(ctx, 1)
	if len(lines) == 0 {
		return fail(ctx, "indented block")
	}
	return parse.Success[ast.Block](ast.QuotedBlock{Content: b.rec.BlocksOf(ctx, dedent(lines))}, next)
}

// paragraph reads lines up to a blank line. A paragraph ending in "::"
// introduces a literal block.
func (b blocks) paragraph(ctx parse.Context) parse.Result[ast.Block] {
	var lines []string
	cur := ctx
	for !cur.AtEnd() {
		text, next := line(cur)
		if isBlank(text) {
			break
		}
		lines = append(lines, strings.TrimRight(text, " "))
		cur = next
	}
	if len(lines) == 0 {
		return fail(ctx, "paragraph")
	}

	text := strings.Join(lines, "\n")
	if !strings.HasSuffix(text, "::") {
		return parse.Success[ast.Block](ast.Paragraph{Content: b.rec.SpansOf(ctx, text)}, cur)
	}

	code, after := indented(skipBlank(cur), 1)
	if len(code) == 0 {
		return parse.Success[ast.Block](ast.Paragraph{Content: b.rec.SpansOf(ctx, text)}, cur)
	}
	literal := ast.CodeBlock{Code: dedent(code)}

	switch {
	case text == "::":
		return parse.Success[ast.Block](literal, after)
	case strings.HasSuffix(text, " ::"):
		text = strings.TrimSuffix(text, " ::")
	default:
		text = strings.TrimSuffix(text, ":")
	}
	intro := ast.Paragraph{Content: b.rec.SpansOf(ctx, text)}
	return parse.Success[ast.Block](ast.BlockSequence{Content: []ast.Block{intro, literal}}, after)
}
