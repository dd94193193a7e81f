package markdown

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sanity-io/litter"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
)

func parseBlocks(t *testing.T, content string, exts ...markup.Extension) []ast.Block {
	t.Helper()
	doc, err := New(exts...).Parse(context.Background(), ast.ParsePath("/test.md"), []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Format != FormatName {
		t.Errorf("Format = %q, want %q", doc.Format, FormatName)
	}
	return doc.Content
}

func assertEqual(t *testing.T, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got:\n%s\nwant:\n%s", litter.Sdump(got), litter.Sdump(want))
	}
}

func txt(s string) ast.Text { return ast.Text{Content: s} }

func TestParser_Parse_Basic(t *testing.T) {
	blocks := parseBlocks(t, "# Hello {#greeting}\n\nWorld *em* and **strong**.")

	assertEqual(t, blocks, []ast.Block{
		ast.Header{Level: 1, Content: []ast.Span{txt("Hello")}, Options: ast.Options{ID: "greeting"}},
		ast.Paragraph{Content: []ast.Span{
			txt("World "),
			ast.Emphasized{Content: []ast.Span{txt("em")}},
			txt(" and "),
			ast.Strong{Content: []ast.Span{txt("strong")}},
			txt("."),
		}},
	})
}

func TestParser_Parse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Parse(ctx, ast.ParsePath("/test.md"), []byte("# Hello"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

func TestMapper_Links(t *testing.T) {
	blocks := parseBlocks(t, "[guide](guide.md#setup) [site](https://example.com \"Home\") ![logo](img/logo.png)")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	spans := blocks[0].(ast.Paragraph).Content
	if len(spans) != 5 {
		t.Fatalf("expected 5 spans, got %s", litter.Sdump(spans))
	}

	ref, ok := spans[0].(ast.PathReference)
	if !ok {
		t.Fatalf("expected path reference, got %T", spans[0])
	}
	if ref.Path != "guide.md#setup" {
		t.Errorf("Path = %q, want %q", ref.Path, "guide.md#setup")
	}
	if ref.Source.Line != 1 {
		t.Errorf("Source.Line = %d, want 1", ref.Source.Line)
	}
	assertEqual(t, ref.Content, []ast.Span{txt("guide")})

	assertEqual(t, spans[2], ast.SpanLink{
		Content: []ast.Span{txt("site")},
		Target:  ast.ExternalTarget{URL: "https://example.com"},
		Title:   "Home",
	})
	assertEqual(t, spans[4], ast.Image{Alt: "logo", Target: ast.InternalTarget{Relative: "img/logo.png"}})
}

func TestMapper_CodeBlocks(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLang string
		wantCode string
	}{
		{"fenced with info", "```golang\nfmt.Println(1)\n```", "go", "fmt.Println(1)"},
		{"fenced without info", "```\npackage main\n\nfunc main() {}\n```", "go", "package main\n\nfunc main() {}"},
		{"indented", "    {\"a\": 1}\n", "json", "{\"a\": 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := parseBlocks(t, tt.content)
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(blocks))
			}
			code, ok := blocks[0].(ast.CodeBlock)
			if !ok {
				t.Fatalf("expected code block, got %T", blocks[0])
			}
			if code.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", code.Language, tt.wantLang)
			}
			if code.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", code.Code, tt.wantCode)
			}
		})
	}
}

func TestMapper_Lists(t *testing.T) {
	blocks := parseBlocks(t, "- a\n- b\n\n3. c\n")

	assertEqual(t, blocks, []ast.Block{
		ast.List{Items: []ast.Block{
			ast.ListItem{Content: []ast.Block{ast.Paragraph{Content: []ast.Span{txt("a")}}}},
			ast.ListItem{Content: []ast.Block{ast.Paragraph{Content: []ast.Span{txt("b")}}}},
		}},
		ast.List{Ordered: true, Start: 3, Items: []ast.Block{
			ast.ListItem{Content: []ast.Block{ast.Paragraph{Content: []ast.Span{txt("c")}}}},
		}},
	})
}

func TestMapper_Footnotes(t *testing.T) {
	blocks := parseBlocks(t, "Text[^note].\n\n[^note]: The note.\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %s", litter.Sdump(blocks))
	}

	spans := blocks[0].(ast.Paragraph).Content
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %s", litter.Sdump(spans))
	}
	ref, ok := spans[1].(ast.FootnoteReference)
	if !ok {
		t.Fatalf("expected footnote reference, got %T", spans[1])
	}
	assertEqual(t, ref.Label, ast.AutonumberLabel{Label: "note"})

	def, ok := blocks[1].(ast.FootnoteDefinition)
	if !ok {
		t.Fatalf("expected footnote definition, got %T", blocks[1])
	}
	assertEqual(t, def.Label, ast.AutonumberLabel{Label: "note"})
}

func TestMapper_GFM(t *testing.T) {
	blocks := parseBlocks(t, "~~gone~~\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %s", litter.Sdump(blocks))
	}

	assertEqual(t, blocks[0], ast.Paragraph{Content: []ast.Span{ast.Deleted{Content: []ast.Span{txt("gone")}}}})

	table, ok := blocks[1].(ast.BlockSequence)
	if !ok || !table.HasStyle("table") {
		t.Fatalf("expected table, got %s", litter.Sdump(blocks[1]))
	}
	if len(table.Content) != 2 {
		t.Errorf("expected header and one row, got %d", len(table.Content))
	}
}

func TestMapper_Autolinks(t *testing.T) {
	content := "see https://example.com now"

	plain := parseBlocks(t, content)
	assertEqual(t, plain, []ast.Block{ast.Paragraph{Content: []ast.Span{txt(content)}}})

	linked := parseBlocks(t, content, markup.Autolinks)
	assertEqual(t, linked, []ast.Block{ast.Paragraph{Content: []ast.Span{
		txt("see "),
		ast.SpanLink{
			Content: []ast.Span{txt("https://example.com")},
			Target:  ast.ExternalTarget{URL: "https://example.com"},
		},
		txt(" now"),
	}}})
}

func TestFormatRegistered(t *testing.T) {
	format, err := markup.DefaultRegistry.ForFile("README.md", nil)
	if err != nil {
		t.Fatalf("ForFile() error = %v", err)
	}
	if format.Name != FormatName {
		t.Errorf("Name = %q, want %q", format.Name, FormatName)
	}
}
