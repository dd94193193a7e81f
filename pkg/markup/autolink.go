package markup

import (
	"strings"
	"unicode"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/parse"
)

// Autolinks turns bare http and https URLs into links.
var Autolinks = Extension{
	Name:        "autolinks",
	Description: "Bare http:// and https:// URLs become links",
	Spans: func(RecursiveSpanParsers) []parse.PrefixedParser[ast.Span] {
		return []parse.PrefixedParser[ast.Span]{parse.Prefixed(parse.NewCharSet('h'), autolink)}
	},
}

func autolink(ctx parse.Context) parse.Result[ast.Span] {
	if parse.IsWordChar(ctx.PrevChar()) {
		return parse.Failure[ast.Span](parse.Messagef("autolink inside word"), ctx)
	}
	rest := ctx.Remaining()
	if !strings.HasPrefix(rest, "http://") && !strings.HasPrefix(rest, "https://") {
		return parse.Failure[ast.Span](parse.Expected("http:// or https://"), ctx)
	}

	end := strings.IndexFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || r == '<' || r == '>' || r == '`'
	})
	if end < 0 {
		end = len(rest)
	}
	url := strings.TrimRight(rest[:end], ".,;:!?)'\"*_")
	if strings.HasSuffix(url, "://") {
		return parse.Failure[ast.Span](parse.Messagef("empty URL"), ctx)
	}

	link := ast.SpanLink{
		Content: []ast.Span{ast.Text{Content: url}},
		Target:  ast.ExternalTarget{URL: url},
	}
	return parse.Success[ast.Span](link, ctx.Consume(len(url)))
}
