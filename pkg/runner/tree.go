package runner

import (
	"slices"
	"strings"

	"github.com/yaklabco/docweave/pkg/ast"
)

// buildTree assembles parsed documents into a tree mirroring the directory
// layout. rootConfig is applied below the configuration of the root
// directory's directory.yaml. Directories without any documents are left
// out.
func buildTree(inv *Inventory, docs map[ast.Path]*ast.Document, rootConfig ast.TreeConfig) *ast.DocumentTree {
	children := make(map[ast.Path][]ast.Path)
	for dir := range inv.Directories {
		if dir.IsRoot() {
			continue
		}
		children[dir.Parent()] = append(children[dir.Parent()], dir)
	}

	docsByDir := make(map[ast.Path][]*ast.Document)
	for _, src := range inv.Sources {
		if doc, ok := docs[src.Path]; ok {
			docsByDir[src.Path.Parent()] = append(docsByDir[src.Path.Parent()], doc)
		}
	}

	staticByDir := make(map[ast.Path][]ast.Path)
	for _, p := range inv.Static {
		staticByDir[p.Parent()] = append(staticByDir[p.Parent()], p)
	}

	var assemble func(dir ast.Path) *ast.DocumentTree
	assemble = func(dir ast.Path) *ast.DocumentTree {
		tree := &ast.DocumentTree{
			Path:            dir,
			Config:          inv.Directories[dir],
			StaticDocuments: staticByDir[dir],
		}
		for _, doc := range docsByDir[dir] {
			if tree.TitleDocument == nil && ast.IsTitleName(doc.Path.Name()) {
				tree.TitleDocument = doc
				continue
			}
			tree.Content = append(tree.Content, doc)
		}
		for _, sub := range children[dir] {
			if subtree := assemble(sub); !isEmpty(subtree) {
				tree.Content = append(tree.Content, subtree)
			}
		}
		slices.SortFunc(tree.Content, func(a, b ast.TreeContent) int {
			return strings.Compare(a.ContentPath().Name(), b.ContentPath().Name())
		})
		return tree
	}

	root := assemble(ast.Root)
	root.Config = rootConfig.Merge(root.Config)
	return root
}

func isEmpty(tree *ast.DocumentTree) bool {
	return tree.TitleDocument == nil && len(tree.Content) == 0 && len(tree.StaticDocuments) == 0
}

func countTrees(tree *ast.DocumentTree) int {
	n := 1
	for _, sub := range tree.Subtrees() {
		n += countTrees(sub)
	}
	return n
}
