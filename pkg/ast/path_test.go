package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docweave/pkg/ast"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		want     string
		fragment string
	}{
		{"/a/b.rst", "/a/b.rst", ""},
		{"a/./b.rst#sec", "/a/b.rst#sec", "sec"},
		{"/a/../b.rst", "/b.rst", ""},
		{"", "/", ""},
	}

	for _, tt := range tests {
		got := ast.ParsePath(tt.input)
		assert.Equal(t, tt.want, got.String(), tt.input)
		assert.Equal(t, tt.fragment, got.Fragment(), tt.input)
	}
}

func TestPathNavigation(t *testing.T) {
	t.Parallel()

	doc := ast.ParsePath("/guide/setup/install.md")

	assert.Equal(t, "/guide/setup", doc.Parent().String())
	assert.Equal(t, "install.md", doc.Name())
	assert.Equal(t, ".md", doc.Ext())
	assert.Equal(t, "/guide/setup/install.html", doc.WithExt(".html").String())
	assert.Equal(t, "/guide/intro.md#start", doc.Parent().Resolve("../intro.md#start").String())
	assert.Equal(t, "/top.md", doc.Parent().Resolve("/top.md").String())
	assert.True(t, ast.ParsePath("/guide").IsAncestorOf(doc))
	assert.False(t, ast.ParsePath("/gui").IsAncestorOf(doc))
	assert.True(t, ast.Root.Parent().IsRoot())
}

func TestPathRelativeTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		base   string
		want   string
	}{
		{"/a/b.md", "/a", "b.md"},
		{"/a/b.md#x", "/a", "b.md#x"},
		{"/c/d.md", "/a/b", "../../c/d.md"},
		{"/a", "/a", "."},
		{"/a/sub/e.md", "/", "a/sub/e.md"},
	}

	for _, tt := range tests {
		got := ast.ParsePath(tt.target).RelativeTo(ast.ParsePath(tt.base))
		assert.Equal(t, tt.want, got, "%s relative to %s", tt.target, tt.base)
	}
}

func TestTreeConfigMerge(t *testing.T) {
	t.Parallel()

	base := ast.TreeConfig{
		Title:          "Root",
		LinkValidation: ast.LinkValidation{Excluded: []string{"/legacy/**"}},
		LinkTargets:    map[string]string{"home": "https://a.example", "docs": "https://docs.example"},
	}
	child := ast.TreeConfig{
		LinkValidation: ast.LinkValidation{Excluded: []string{"/drafts/**"}},
		LinkTargets:    map[string]string{"home": "https://b.example"},
	}

	merged := base.Merge(child)

	assert.Equal(t, "Root", merged.Title)
	assert.Equal(t, []string{"/legacy/**", "/drafts/**"}, merged.LinkValidation.Excluded)
	assert.Equal(t, "https://b.example", merged.LinkTargets["home"])
	assert.Equal(t, "https://docs.example", merged.LinkTargets["docs"])
	assert.Equal(t, "https://a.example", base.LinkTargets["home"], "base must not change")
}

func TestIsTitleName(t *testing.T) {
	t.Parallel()

	assert.True(t, ast.IsTitleName("index.rst"))
	assert.True(t, ast.IsTitleName("README.md"))
	assert.False(t, ast.IsTitleName("intro.md"))
}
