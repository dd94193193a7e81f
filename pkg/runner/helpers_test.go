package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
)

// writeTree creates files below dir. Keys are slash-separated relative paths.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}

// errCorrupt is returned by the line format for content starting with "!".
var errCorrupt = errors.New("corrupt document")

// lineRegistry returns a registry with a format that turns every line of a
// .txt file into a paragraph.
func lineRegistry() *markup.Registry {
	reg := markup.NewRegistry()
	reg.Register(markup.Format{
		Name:           "lines",
		Description:    "One paragraph per line",
		FileExtensions: []string{".txt"},
		New: func(...markup.Extension) markup.Parser {
			return markup.ParserFunc(func(ctx context.Context, path ast.Path, content []byte) (*ast.Document, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				if strings.HasPrefix(string(content), "!") {
					return nil, errCorrupt
				}
				var blocks []ast.Block
				for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
					blocks = append(blocks, ast.Paragraph{Content: []ast.Span{ast.Text{Content: line}}})
				}
				return &ast.Document{Path: path, Content: blocks, Format: "lines"}, nil
			})
		},
	})
	return reg
}

func paths(ps []ast.Path) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
