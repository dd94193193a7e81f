package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/cursor"
)

func buildTree() *ast.DocumentTree {
	return &ast.DocumentTree{
		Path:   ast.Root,
		Config: ast.TreeConfig{LinkTargets: map[string]string{"home": "https://example.com"}},
		TitleDocument: &ast.Document{
			Path: ast.ParsePath("/index.rst"),
		},
		Content: []ast.TreeContent{
			&ast.Document{Path: ast.ParsePath("/a.rst")},
			&ast.DocumentTree{
				Path:   ast.ParsePath("/sub"),
				Config: ast.TreeConfig{LinkValidation: ast.LinkValidation{Excluded: []string{"/sub/drafts/*"}}},
				Content: []ast.TreeContent{
					&ast.Document{Path: ast.ParsePath("/sub/b.rst")},
				},
				StaticDocuments: []ast.Path{ast.ParsePath("/sub/logo.png")},
			},
		},
	}
}

func TestRootCursorIndexesDocuments(t *testing.T) {
	t.Parallel()

	root := cursor.NewRoot(buildTree())

	var paths []string
	for _, dc := range root.Documents() {
		paths = append(paths, dc.Path().String())
	}
	assert.Equal(t, []string{"/index.rst", "/a.rst", "/sub/b.rst"}, paths)

	dc, ok := root.Document(ast.ParsePath("/sub/b.rst#frag"))
	require.True(t, ok)
	assert.Equal(t, "/sub", dc.Parent().Path().String())
	assert.True(t, root.HasStatic(ast.ParsePath("/sub/logo.png")))
	assert.False(t, root.HasStatic(ast.ParsePath("/logo.png")))

	_, ok = root.SubTree(ast.ParsePath("/sub"))
	assert.True(t, ok)
}

func TestTreeCursorConfigIsInherited(t *testing.T) {
	t.Parallel()

	root := cursor.NewRoot(buildTree())
	dc, ok := root.Document(ast.ParsePath("/sub/b.rst"))
	require.True(t, ok)

	cfg := dc.Config()
	assert.Equal(t, "https://example.com", cfg.LinkTargets["home"])
	assert.Equal(t, []string{"/sub/drafts/*"}, cfg.LinkValidation.Excluded)

	chain := dc.Parent().Ancestors()
	require.Len(t, chain, 2)
	assert.True(t, chain[1].IsRoot())
	assert.Same(t, root.Root(), chain[1])
}

func TestDocumentCursorNavigation(t *testing.T) {
	t.Parallel()

	root := cursor.NewRoot(buildTree())
	docs := root.Documents()

	assert.True(t, docs[0].IsTitle())
	assert.False(t, docs[1].IsTitle())

	_, ok := docs[0].Previous()
	assert.False(t, ok)

	next, ok := docs[1].Next()
	require.True(t, ok)
	assert.Equal(t, "/sub/b.rst", next.Path().String())

	_, ok = docs[2].Next()
	assert.False(t, ok)
}
