// Package render writes resolved documents in one of the output formats.
package render

import (
	"fmt"
	"io"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/config"
)

// Renderer writes one document.
type Renderer interface {
	Render(w io.Writer, doc *ast.Document) error
}

// Options configures the renderers.
type Options struct {
	// MessageLevel hides diagnostic messages below this level; the
	// affected nodes render as their fallback content.
	MessageLevel ast.MessageLevel

	// Highlight configures code highlighting in HTML.
	Highlight config.HighlightConfig

	// Documents holds the paths of all markup documents in the tree.
	// Internal HTML links to these documents point at their rendered
	// output instead of the markup source.
	Documents map[ast.Path]bool
}

// OptionsFromConfig derives render options from the configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	level, err := ast.ParseMessageLevel(cfg.MessageLevel)
	if err != nil {
		return Options{}, fmt.Errorf("message level: %w", err)
	}
	return Options{MessageLevel: level, Highlight: cfg.Highlight}, nil
}

// New returns the renderer of a format.
func New(format config.RenderFormat, opts Options) (Renderer, error) {
	switch format {
	case config.RenderHTML:
		return &HTMLRenderer{opts: opts}, nil
	case config.RenderAST:
		return &ASTRenderer{opts: opts}, nil
	case config.RenderDump:
		return &DumpRenderer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown render format %q", format)
	}
}

// OutputPath returns the path a rendered document is written to.
func OutputPath(doc ast.Path, format config.RenderFormat) ast.Path {
	return doc.WithoutFragment().WithExt(format.Ext())
}

// DocumentSet returns the paths of every document in tree.
func DocumentSet(tree *ast.DocumentTree) map[ast.Path]bool {
	docs := tree.AllDocuments()
	set := make(map[ast.Path]bool, len(docs))
	for _, doc := range docs {
		set[doc.Path.WithoutFragment()] = true
	}
	return set
}
