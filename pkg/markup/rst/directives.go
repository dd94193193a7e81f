package rst

import (
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/langdetect"
	"github.com/yaklabco/docweave/pkg/parse"
)

var directiveHeadParser = parse.Seq(
	parse.Before(parse.SomeWhile(isDirectiveNameChar), parse.Literal("::").Parser()),
	parse.Anything,
)

func isDirectiveNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '+' || r == '.'
}

// directiveHead splits "name:: arguments".
func directiveHead(rest string) (string, string, bool) {
	res := directiveHeadParser.ParseString(rest)
	if !res.OK() {
		return "", "", false
	}
	head := res.Value()
	if head.Second != "" && head.Second[0] != ' ' {
		return "", "", false
	}
	return strings.ToLower(head.First), strings.TrimSpace(head.Second), true
}

var admonitions = map[string]bool{
	"attention": true, "caution": true, "danger": true, "error": true, "hint": true,
	"important": true, "note": true, "seealso": true, "tip": true, "warning": true,
}

// ignoredDirectives have no representation in the document tree.
var ignoredDirectives = map[string]bool{
	"contents": true, "include": true, "index": true, "meta": true,
	"only": true, "raw": true, "sectnum": true, "toctree": true,
}

// splitArgs splits directive arguments with shell quoting rules, so that
// quoted arguments may contain spaces. Unbalanced quotes fall back to
// splitting at whitespace.
func splitArgs(args string) []string {
	words, err := shellquote.Split(args)
	if err != nil {
		return strings.Fields(args)
	}
	return words
}

// directiveOptions splits the leading ":key: value" field list of a
// directive body from its content.
func directiveOptions(body []string) (map[string]string, string) {
	lines := strings.Split(dedent(body), "\n")
	opts := make(map[string]string)
	idx := 0
	for ; idx < len(lines); idx++ {
		l := lines[idx]
		if !strings.HasPrefix(l, ":") {
			break
		}
		end := strings.Index(l[1:], ":")
		if end <= 0 {
			break
		}
		opts[strings.ToLower(l[1:end+1])] = strings.TrimSpace(l[end+2:])
	}
	return opts, strings.Trim(strings.Join(lines[idx:], "\n"), "\n")
}

func joinText(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

func (b blocks) directive(ctx parse.Context, name, args string, body []string) ast.Block {
	opts, content := directiveOptions(body)
	options := ast.Options{ID: opts["name"]}.WithStyles(splitArgs(opts["class"])...)

	switch {
	case name == "code" || name == "code-block" || name == "sourcecode":
		var lang string
		if words := splitArgs(args); len(words) > 0 {
			lang = langdetect.Language(words[0])
		} else {
			lang = langdetect.Detect(content)
		}
		return ast.CodeBlock{Language: lang, Code: content, Options: options}

	case admonitions[name]:
		return ast.BlockSequence{
			Content: b.rec.BlocksOf(ctx, joinText(args, content)),
			Options: options.WithStyles(name),
		}

	case name == "admonition" || name == "topic" || name == "sidebar":
		title := ast.Paragraph{Content: b.rec.SpansOf(ctx, args), Options: ast.Options{Styles: []string{"title"}}}
		return ast.BlockSequence{
			Content: append([]ast.Block{title}, b.rec.BlocksOf(ctx, content)...),
			Options: options.WithStyles(name),
		}

	case name == "image" || name == "figure":
		img := ast.Paragraph{Content: []ast.Span{image(args, opts)}}
		if name == "image" {
			img.Options = options
			return img
		}
		return ast.BlockSequence{
			Content: append([]ast.Block{img}, b.rec.BlocksOf(ctx, content)...),
			Options: options.WithStyles("figure"),
		}

	case name == "container":
		return ast.BlockSequence{
			Content: b.rec.BlocksOf(ctx, content),
			Options: options.WithStyles(splitArgs(args)...),
		}

	case name == "epigraph" || name == "highlights" || name == "pull-quote":
		return ast.QuotedBlock{Content: b.rec.BlocksOf(ctx, content), Options: options.WithStyles(name)}

	case name == "rubric":
		return ast.Paragraph{Content: b.rec.SpansOf(ctx, args), Options: options.WithStyles("rubric")}

	case ignoredDirectives[name]:
		return ast.Comment{Text: joinText(args, content)}
	}

	pos := ctx.Position()
	msg := ast.NewMessage(ast.LevelWarning, "unknown directive type %q", name)
	src := ast.Source{Text: ".. " + name + ":: " + args, Line: pos.Line, Column: pos.Column}
	return ast.NewInvalidBlock(msg, src, ast.Comment{Text: joinText(args, content)})
}

// image builds the span of an image directive. Relative image paths are
// anchored to the document by link resolution.
func image(uri string, opts map[string]string) ast.Span {
	uri = strings.Join(strings.Fields(uri), "")
	var target ast.Target = ast.InternalTarget{Relative: uri}
	if isURL(uri) {
		target = ast.ExternalTarget{URL: uri}
	}
	return ast.Image{Alt: opts["alt"], Target: target, Title: opts["title"]}
}
