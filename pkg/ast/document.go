package ast

import (
	"path"
	"slices"
	"strings"
)

// Document is one parsed markup document.
type Document struct {
	Path    Path
	Content []Block

	// Format is the name of the markup format the document was parsed with.
	Format string
}

// Title returns the content of the first header, if any.
func (d *Document) Title() []Span {
	var title []Span
	_ = Walk(d.Content, func(e Element) error {
		switch h := e.(type) {
		case Header:
			title = h.Content
			return ErrStopWalk
		case DecoratedHeader:
			title = h.Content
			return ErrStopWalk
		}
		return nil
	})
	return title
}

// WithContent returns a copy of the document with new content.
func (d *Document) WithContent(content []Block) *Document {
	clone := *d
	clone.Content = content
	return &clone
}

// TreeContent is a Document or a DocumentTree.
type TreeContent interface {
	ContentPath() Path
	treeContent()
}

// ContentPath returns the document path.
func (d *Document) ContentPath() Path { return d.Path }
func (d *Document) treeContent()      {}

// LinkValidation configures internal link validation for a tree scope.
type LinkValidation struct {
	// Excluded holds glob patterns of paths exempt from validation.
	Excluded []string `yaml:"excluded,omitempty" json:"excluded,omitempty"`
}

// TreeConfig is the configuration attached to one tree in the hierarchy.
// Each tree inherits the configuration of its ancestors.
type TreeConfig struct {
	Title          string            `yaml:"title,omitempty" json:"title,omitempty"`
	LinkValidation LinkValidation    `yaml:"link_validation,omitempty" json:"link_validation,omitempty"`
	LinkTargets    map[string]string `yaml:"link_targets,omitempty" json:"link_targets,omitempty"`
}

// Merge returns base with child applied on top. Child link targets shadow
// those of base with the same id; exclusions accumulate.
func (base TreeConfig) Merge(child TreeConfig) TreeConfig {
	merged := TreeConfig{
		Title: base.Title,
		LinkValidation: LinkValidation{
			Excluded: append(slices.Clone(base.LinkValidation.Excluded), child.LinkValidation.Excluded...),
		},
	}
	if child.Title != "" {
		merged.Title = child.Title
	}
	if len(base.LinkTargets)+len(child.LinkTargets) > 0 {
		merged.LinkTargets = make(map[string]string, len(base.LinkTargets)+len(child.LinkTargets))
		for id, url := range base.LinkTargets {
			merged.LinkTargets[id] = url
		}
		for id, url := range child.LinkTargets {
			merged.LinkTargets[id] = url
		}
	}
	return merged
}

// DocumentTree is a directory of documents and subtrees.
type DocumentTree struct {
	Path   Path
	Config TreeConfig

	// TitleDocument is the index document of the tree, if any. It is not
	// part of Content.
	TitleDocument *Document

	// Content holds documents and subtrees in a stable order.
	Content []TreeContent

	// StaticDocuments are non-markup files that links may point to.
	StaticDocuments []Path
}

// ContentPath returns the tree path.
func (t *DocumentTree) ContentPath() Path { return t.Path }
func (t *DocumentTree) treeContent()      {}

// Documents returns the documents directly in this tree, title first.
func (t *DocumentTree) Documents() []*Document {
	var docs []*Document
	if t.TitleDocument != nil {
		docs = append(docs, t.TitleDocument)
	}
	for _, c := range t.Content {
		if doc, ok := c.(*Document); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Subtrees returns the trees directly below this tree.
func (t *DocumentTree) Subtrees() []*DocumentTree {
	var trees []*DocumentTree
	for _, c := range t.Content {
		if sub, ok := c.(*DocumentTree); ok {
			trees = append(trees, sub)
		}
	}
	return trees
}

// AllDocuments returns every document of the tree and its subtrees,
// depth first.
func (t *DocumentTree) AllDocuments() []*Document {
	docs := t.Documents()
	for _, sub := range t.Subtrees() {
		docs = append(docs, sub.AllDocuments()...)
	}
	return docs
}

// AllStaticDocuments returns every static document of the tree and its
// subtrees.
func (t *DocumentTree) AllStaticDocuments() []Path {
	paths := slices.Clone(t.StaticDocuments)
	for _, sub := range t.Subtrees() {
		paths = append(paths, sub.AllStaticDocuments()...)
	}
	return paths
}

// MapDocuments returns a copy of the tree with f applied to every document.
func (t *DocumentTree) MapDocuments(f func(*Document) *Document) *DocumentTree {
	clone := *t
	if t.TitleDocument != nil {
		clone.TitleDocument = f(t.TitleDocument)
	}
	clone.Content = make([]TreeContent, len(t.Content))
	for i, c := range t.Content {
		switch node := c.(type) {
		case *Document:
			clone.Content[i] = f(node)
		case *DocumentTree:
			clone.Content[i] = node.MapDocuments(f)
		default:
			clone.Content[i] = c
		}
	}
	return &clone
}

// IsTitleName reports whether a file name designates a tree's title document.
func IsTitleName(name string) bool {
	base := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
	return base == "index" || base == "readme"
}
