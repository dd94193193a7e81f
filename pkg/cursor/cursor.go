// Package cursor provides read-only navigation over a document tree.
// Rewrite rules use cursors to reach ancestor configuration and other
// documents without touching the tree itself.
package cursor

import "github.com/yaklabco/docweave/pkg/ast"

// RootCursor is the entry point to a whole document tree.
type RootCursor struct {
	tree   *ast.DocumentTree
	root   *TreeCursor
	docs   []*DocumentCursor
	byPath map[ast.Path]*DocumentCursor
	trees  map[ast.Path]*TreeCursor
	static map[ast.Path]struct{}
}

// NewRoot builds cursors for every tree and document below tree.
func NewRoot(tree *ast.DocumentTree) *RootCursor {
	rc := &RootCursor{
		tree:   tree,
		byPath: make(map[ast.Path]*DocumentCursor),
		trees:  make(map[ast.Path]*TreeCursor),
		static: make(map[ast.Path]struct{}),
	}
	rc.root = rc.addTree(tree, nil)
	for idx, doc := range rc.docs {
		doc.index = idx
	}
	return rc
}

func (rc *RootCursor) addTree(tree *ast.DocumentTree, parent *TreeCursor) *TreeCursor {
	tc := &TreeCursor{tree: tree, parent: parent, root: rc, config: tree.Config}
	if parent != nil {
		tc.config = parent.config.Merge(tree.Config)
	}
	rc.trees[tree.Path.WithoutFragment()] = tc

	if tree.TitleDocument != nil {
		tc.title = rc.addDocument(tree.TitleDocument, tc)
	}
	for _, content := range tree.Content {
		switch node := content.(type) {
		case *ast.Document:
			tc.documents = append(tc.documents, rc.addDocument(node, tc))
		case *ast.DocumentTree:
			tc.children = append(tc.children, rc.addTree(node, tc))
		}
	}
	for _, p := range tree.StaticDocuments {
		rc.static[p.WithoutFragment()] = struct{}{}
	}
	return tc
}

func (rc *RootCursor) addDocument(doc *ast.Document, parent *TreeCursor) *DocumentCursor {
	dc := &DocumentCursor{doc: doc, parent: parent}
	rc.docs = append(rc.docs, dc)
	rc.byPath[doc.Path.WithoutFragment()] = dc
	return dc
}

// Tree returns the root document tree.
func (rc *RootCursor) Tree() *ast.DocumentTree {
	return rc.tree
}

// Root returns the cursor of the root tree.
func (rc *RootCursor) Root() *TreeCursor {
	return rc.root
}

// Documents returns every document of the tree, depth first, each tree's
// title document first.
func (rc *RootCursor) Documents() []*DocumentCursor {
	return rc.docs
}

// Document returns the cursor of the document at p, ignoring any fragment.
func (rc *RootCursor) Document(p ast.Path) (*DocumentCursor, bool) {
	dc, ok := rc.byPath[p.WithoutFragment()]
	return dc, ok
}

// SubTree returns the cursor of the tree at p.
func (rc *RootCursor) SubTree(p ast.Path) (*TreeCursor, bool) {
	tc, ok := rc.trees[p.WithoutFragment()]
	return tc, ok
}

// HasStatic reports whether p names a static document.
func (rc *RootCursor) HasStatic(p ast.Path) bool {
	_, ok := rc.static[p.WithoutFragment()]
	return ok
}

// TreeCursor points at one tree of the hierarchy.
type TreeCursor struct {
	tree      *ast.DocumentTree
	parent    *TreeCursor
	root      *RootCursor
	config    ast.TreeConfig
	title     *DocumentCursor
	documents []*DocumentCursor
	children  []*TreeCursor
}

// Tree returns the tree.
func (tc *TreeCursor) Tree() *ast.DocumentTree { return tc.tree }

// Path returns the tree path.
func (tc *TreeCursor) Path() ast.Path { return tc.tree.Path }

// Parent returns the enclosing tree, or nil for the root.
func (tc *TreeCursor) Parent() *TreeCursor { return tc.parent }

// RootCursor returns the cursor of the whole hierarchy.
func (tc *TreeCursor) RootCursor() *RootCursor { return tc.root }

// Config returns the tree configuration merged with all ancestors.
func (tc *TreeCursor) Config() ast.TreeConfig { return tc.config }

// TitleDocument returns the title document, or nil.
func (tc *TreeCursor) TitleDocument() *DocumentCursor { return tc.title }

// Documents returns the non-title documents directly in this tree.
func (tc *TreeCursor) Documents() []*DocumentCursor { return tc.documents }

// Children returns the direct subtrees.
func (tc *TreeCursor) Children() []*TreeCursor { return tc.children }

// IsRoot reports whether this is the root tree.
func (tc *TreeCursor) IsRoot() bool { return tc.parent == nil }

// Ancestors returns this tree followed by its ancestors up to the root.
func (tc *TreeCursor) Ancestors() []*TreeCursor {
	var chain []*TreeCursor
	for cur := tc; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	return chain
}

// DocumentCursor points at one document.
type DocumentCursor struct {
	doc    *ast.Document
	parent *TreeCursor
	index  int
}

// Document returns the document.
func (dc *DocumentCursor) Document() *ast.Document { return dc.doc }

// Path returns the document path.
func (dc *DocumentCursor) Path() ast.Path { return dc.doc.Path }

// Parent returns the tree containing the document.
func (dc *DocumentCursor) Parent() *TreeCursor { return dc.parent }

// Root returns the cursor of the whole hierarchy.
func (dc *DocumentCursor) Root() *RootCursor { return dc.parent.root }

// Config returns the configuration in effect for the document.
func (dc *DocumentCursor) Config() ast.TreeConfig { return dc.parent.config }

// IsTitle reports whether the document is its tree's title document.
func (dc *DocumentCursor) IsTitle() bool { return dc.parent.title == dc }

// Previous returns the previous document in depth-first order.
func (dc *DocumentCursor) Previous() (*DocumentCursor, bool) {
	if dc.index == 0 {
		return nil, false
	}
	return dc.Root().docs[dc.index-1], true
}

// Next returns the next document in depth-first order.
func (dc *DocumentCursor) Next() (*DocumentCursor, bool) {
	docs := dc.Root().docs
	if dc.index+1 >= len(docs) {
		return nil, false
	}
	return docs[dc.index+1], true
}
