package rst

import (
	"path"
	"strings"
	"unicode"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
	"github.com/yaklabco/docweave/pkg/parse"
)

func spanParsers(rec markup.RecursiveSpanParsers) []parse.PrefixedParser[ast.Span] {
	s := spans{rec: rec}
	return []parse.PrefixedParser[ast.Span]{
		parse.Prefixed(parse.NewCharSet('*'), s.strong),
		parse.Prefixed(parse.NewCharSet('*'), s.emphasized),
		parse.Prefixed(parse.NewCharSet('`'), s.literal),
		parse.Prefixed(parse.NewCharSet('`'), s.phrase),
		parse.Prefixed(parse.NewCharSet(':'), s.rolePrefix),
		parse.Prefixed(parse.NewCharSet('['), s.footnoteReference),
		parse.Prefixed(parse.NewCharSet('_'), s.inlineTarget),
		parse.Prefixed(parse.NewCharSet('_'), s.simpleReference),
	}
}

type spans struct {
	rec markup.RecursiveSpanParsers
}

func failSpan(ctx parse.Context, what string) parse.Result[ast.Span] {
	return parse.Failure[ast.Span](parse.Expected(what), ctx)
}

func isStartPrecursor(r rune) bool {
	return r == parse.EOFChar || unicode.IsSpace(r) || strings.ContainsRune("-:/'\"<([{", r)
}

func isEndFollower(r rune) bool {
	return r == parse.EOFChar || unicode.IsSpace(r) || strings.ContainsRune("-.,:;!?\\/'\")]}>", r)
}

// canStart reports whether inline markup with a start-string of n bytes
// may begin at ctx.
func canStart(ctx parse.Context, n int) bool {
	if !isStartPrecursor(ctx.PrevChar()) {
		return false
	}
	next := ctx.CharAt(n)
	return next != parse.EOFChar && !unicode.IsSpace(next)
}

var nonSpace = parse.Chars(func(r rune) bool { return !unicode.IsSpace(r) }, 1, 1)

// endString matches delim when it follows text and is followed by an end of
// inline markup.
func endString(delim string) parse.PrefixedParser[string] {
	lit := parse.Literal(delim)
	end := parse.Before(parse.Then(parse.LookBehind(1, nonSpace), lit.Parser()), parse.LookAhead(endFollower))
	return parse.Prefixed(lit.StartChars(), end)
}

var endFollower parse.Parser[parse.Unit] = func(ctx parse.Context) parse.Result[parse.Unit] {
	if !isEndFollower(ctx.Char()) {
		return parse.Failure[parse.Unit](parse.Expected("end of inline markup"), ctx)
	}
	return parse.Success(parse.Unit{}, ctx)
}

func (s spans) markup(delim string) parse.Parser[string] {
	return parse.Delimited(endString(delim)).SkipEscapes(s.rec.EscapedChar()).NonEmpty().Parser()
}

func (s spans) strong(ctx parse.Context) parse.Result[ast.Span] {
	if !canStart(ctx, 2) || !strings.HasPrefix(ctx.Remaining(), "**") {
		return failSpan(ctx, "strong emphasis")
	}
	res := s.rec.RecursiveSpans(s.markup("**"))(ctx.Consume(2))
	if !res.OK() {
		return failSpan(ctx, "strong emphasis")
	}
	return parse.Success[ast.Span](ast.Strong{Content: res.Value()}, res.Next())
}

func (s spans) emphasized(ctx parse.Context) parse.Result[ast.Span] {
	if !canStart(ctx, 1) || ctx.CharAt(1) == '*' {
		return failSpan(ctx, "emphasis")
	}
	res := s.rec.RecursiveSpans(s.markup("*"))(ctx.Consume(1))
	if !res.OK() {
		return failSpan(ctx, "emphasis")
	}
	return parse.Success[ast.Span](ast.Emphasized{Content: res.Value()}, res.Next())
}

// literal parses ``inline literals``. Backslashes have no special meaning
// inside them.
func (s spans) literal(ctx parse.Context) parse.Result[ast.Span] {
	if !canStart(ctx, 2) || !strings.HasPrefix(ctx.Remaining(), "``") {
		return failSpan(ctx, "inline literal")
	}
	res := parse.Delimited(endString("``")).NonEmpty().Parse(ctx.Consume(2))
	if !res.OK() {
		return failSpan(ctx, "inline literal")
	}
	return parse.Success[ast.Span](ast.Literal{Content: res.Value()}, res.Next())
}

var (
	anonymousSuffix = parse.Literal("__")
	namedSuffix     = parse.Literal("_")
	roleName        = parse.Between(
		parse.Literal(":").Parser(),
		parse.SomeWhile(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' }),
		parse.Literal(":").Parser(),
	)
)

// phrase parses backquoted text: hyperlink references, interpreted text
// and interpreted text with a role suffix.
func (s spans) phrase(ctx parse.Context) parse.Result[ast.Span] {
	if !canStart(ctx, 1) || ctx.CharAt(1) == '`' {
		return failSpan(ctx, "interpreted text")
	}
	res := parse.DelimitedBy("`").SkipEscapes(s.rec.EscapedChar()).NonEmpty().Parse(ctx.Consume(1))
	if !res.OK() {
		return failSpan(ctx, "interpreted text")
	}
	text, next := res.Value(), res.Next()
	if unicode.IsSpace(next.CharAt(-2)) {
		return failSpan(ctx, "end of interpreted text")
	}

	if ar := anonymousSuffix.Parse(next); ar.OK() && isEndFollower(ar.Next().Char()) {
		return parse.Success(s.phraseReference(text, true, ctx.Slice(ar.Next()), ctx), ar.Next())
	}
	if nr := namedSuffix.Parse(next); nr.OK() && isEndFollower(nr.Next().Char()) {
		return parse.Success(s.phraseReference(text, false, ctx.Slice(nr.Next()), ctx), nr.Next())
	}
	if rr := roleName(next); rr.OK() && isEndFollower(rr.Next().Char()) {
		return parse.Success(s.role(ctx, rr.Value(), text, ctx.Slice(rr.Next())), rr.Next())
	}
	if !isEndFollower(next.Char()) {
		return failSpan(ctx, "end of interpreted text")
	}
	return parse.Success(s.role(ctx, "title-reference", text, ctx.Slice(next)), next)
}

// rolePrefix parses interpreted text with a leading role, as in
// :doc:`guide`.
func (s spans) rolePrefix(ctx parse.Context) parse.Result[ast.Span] {
	if !isStartPrecursor(ctx.PrevChar()) {
		return failSpan(ctx, "role")
	}
	rr := roleName(ctx)
	if !rr.OK() || rr.Next().Char() != '`' {
		return failSpan(ctx, "role")
	}
	res := s.markup("`")(rr.Next().Consume(1))
	if !res.OK() {
		return failSpan(ctx, "role content")
	}
	return parse.Success(s.role(ctx, rr.Value(), res.Value(), ctx.Slice(res.Next())), res.Next())
}

func sourceAt(ctx parse.Context, text string) ast.Source {
	pos := ctx.Position()
	return ast.Source{Text: text, Line: pos.Line, Column: pos.Column}
}

// embedded splits "text <target>" into its parts. Without an embedded
// target the whole phrase is returned as target.
func embedded(phrase string) (string, string, bool) {
	phrase = strings.TrimSpace(phrase)
	if !strings.HasSuffix(phrase, ">") {
		return "", phrase, false
	}
	open := strings.LastIndex(phrase, "<")
	if open < 0 || (open > 0 && phrase[open-1] != ' ') {
		return "", phrase, false
	}
	target := strings.Join(strings.Fields(phrase[open+1:len(phrase)-1]), "")
	return strings.TrimSpace(phrase[:open]), target, true
}

func (s spans) phraseReference(phrase string, anonymous bool, raw string, ctx parse.Context) ast.Span {
	src := sourceAt(ctx, raw)
	text, target, ok := embedded(phrase)
	if !ok {
		id := strings.Join(strings.Fields(phrase), " ")
		ref := ast.LinkIDReference{Content: s.rec.SpansOf(ctx, phrase), ID: id, Source: src}
		if anonymous {
			ref.ID = ""
		}
		return ref
	}
	if text == "" {
		text = target
	}
	content := s.rec.SpansOf(ctx, text)
	switch {
	case isAliasValue(target):
		return ast.LinkIDReference{Content: content, ID: aliasName(target), Source: src}
	case isURL(target):
		return ast.SpanLink{Content: content, Target: ast.ExternalTarget{URL: target}}
	}
	return ast.PathReference{Content: content, Path: target, Source: src}
}

func (s spans) role(ctx parse.Context, name, text, raw string) ast.Span {
	src := sourceAt(ctx, raw)
	switch strings.ToLower(name) {
	case "doc":
		title, target, ok := embedded(text)
		ref := ast.PathReference{Path: withDefaultExt(target), Source: src}
		if ok && title != "" {
			ref.Content = s.rec.SpansOf(ctx, title)
		}
		return ref
	case "ref":
		title, target, ok := embedded(text)
		ref := ast.LinkIDReference{ID: target, Source: src}
		if ok && title != "" {
			ref.Content = s.rec.SpansOf(ctx, title)
		}
		return ref
	case "code", "literal":
		return ast.Literal{Content: text}
	case "emphasis":
		return ast.Emphasized{Content: s.rec.SpansOf(ctx, text)}
	case "strong":
		return ast.Strong{Content: s.rec.SpansOf(ctx, text)}
	case "title-reference", "title", "t":
		return ast.Emphasized{Content: s.rec.SpansOf(ctx, text), Options: ast.Options{Styles: []string{"title-reference"}}}
	}
	return ast.SpanSequence{Content: s.rec.SpansOf(ctx, text), Options: ast.Options{Styles: []string{name}}}
}

// withDefaultExt adds the rst extension to document paths without one.
func withDefaultExt(p string) string {
	file, frag, hasFrag := strings.Cut(p, "#")
	if file != "" && path.Ext(file) == "" {
		file += ".rst"
	}
	if hasFrag {
		return file + "#" + frag
	}
	return file
}

var bracketLabel = parse.Between(
	parse.Literal("[").Parser(),
	parse.DelimitedBy("]").NonEmpty().FailOn('\n', '[').Parser(),
	parse.Literal("_").Parser(),
)

func (s spans) footnoteReference(ctx parse.Context) parse.Result[ast.Span] {
	if !isStartPrecursor(ctx.PrevChar()) {
		return failSpan(ctx, "footnote reference")
	}
	res := bracketLabel(ctx)
	if !res.OK() || !isEndFollower(res.Next().Char()) {
		return failSpan(ctx, "footnote reference")
	}
	label, next := res.Value(), res.Next()
	src := sourceAt(ctx, ctx.Slice(next))
	if fl, ok := footnoteLabel(label); ok {
		return parse.Success[ast.Span](ast.FootnoteReference{Label: fl, Source: src}, next)
	}
	if isCitationLabel(label) {
		return parse.Success[ast.Span](ast.CitationReference{Label: label, Source: src}, next)
	}
	return failSpan(ctx, "footnote or citation label")
}

// inlineTarget parses _`inline targets`, which label their own text.
func (s spans) inlineTarget(ctx parse.Context) parse.Result[ast.Span] {
	if !isStartPrecursor(ctx.PrevChar()) || !strings.HasPrefix(ctx.Remaining(), "_`") {
		return failSpan(ctx, "inline target")
	}
	res := s.rec.EscapedText(parse.Delimited(endString("`")).NonEmpty())(ctx.Consume(2))
	if !res.OK() {
		return failSpan(ctx, "inline target")
	}
	text := res.Value()
	return parse.Success[ast.Span](ast.Text{Content: text, Options: ast.Options{ID: text}}, res.Next())
}

func isRefChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_-.+:", r)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

var reversedRefName = parse.SomeWhile(isRefChar)

// simpleReference parses "name_" and "name__" at the trailing underscore.
// The name is read backwards from the text already consumed, which the
// span then claims through retract.
func (s spans) simpleReference(ctx parse.Context) parse.Result[ast.Span] {
	suffix := "_"
	if strings.HasPrefix(ctx.Remaining(), "__") {
		suffix = "__"
	}
	next := ctx.Consume(len(suffix))
	if !isEndFollower(next.Char()) {
		return failSpan(ctx, "end of reference")
	}

	rev := reversedRefName(ctx.Reverse())
	if !rev.OK() {
		return failSpan(ctx, "reference name")
	}
	name := reverse(rev.Value())
	trimmed := strings.TrimLeftFunc(name, func(r rune) bool { return !isAlnum(r) })
	if trimmed == "" || !isAlnum([]rune(trimmed)[len([]rune(trimmed))-1]) {
		return failSpan(ctx, "reference name")
	}
	if trimmed == name && !isStartPrecursor(rev.Next().Char()) {
		return failSpan(ctx, "reference name")
	}

	src := sourceAt(ctx.Consume(-len(trimmed)), trimmed+suffix)
	ref := ast.LinkIDReference{Content: []ast.Span{ast.Text{Content: trimmed}}, ID: trimmed, Source: src}
	if suffix == "__" {
		ref.ID = ""
	}
	return parse.Success[ast.Span](ref, next)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// retract reports the length of the name a simple reference claims from
// the preceding text.
func retract(span ast.Span) int {
	ref, ok := span.(ast.LinkIDReference)
	if !ok || ref.Source.Text == "" {
		return 0
	}
	if first := []rune(ref.Source.Text)[0]; !isAlnum(first) {
		return 0
	}
	return len(strings.TrimRight(ref.Source.Text, "_"))
}
