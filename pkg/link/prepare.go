package link

import "github.com/yaklabco/docweave/pkg/ast"

// headerLevels assigns section levels to header decorations in order of
// first appearance.
type headerLevels struct {
	levels map[ast.HeaderDecoration]int
}

func (h *headerLevels) levelOf(decoration ast.HeaderDecoration) int {
	if h.levels == nil {
		h.levels = make(map[ast.HeaderDecoration]int)
	}
	level, ok := h.levels[decoration]
	if !ok {
		level = len(h.levels) + 1
		h.levels[decoration] = level
	}
	return level
}

// prepareDocument resolves decorated headers to plain headers and gives
// every header an id. Derived ids that collide with an explicit id or an
// earlier derived id get a numeric suffix; explicit ids are kept, so
// duplicate explicit ids are still reported.
func prepareDocument(doc *ast.Document) *ast.Document {
	var explicit []string
	_ = ast.Walk(doc.Content, func(e ast.Element) error {
		if id := e.Opts().ID; id != "" {
			explicit = append(explicit, targetID(id))
		}
		return nil
	})
	ids := newIDRegistry(explicit...)
	levels := &headerLevels{}

	assignID := func(content []ast.Span, opts ast.Options) ast.Options {
		if opts.ID != "" {
			return opts
		}
		return opts.WithID(ids.unique(Slug(ast.ExtractText(content))))
	}

	return doc.Rewrite(ast.RewriteRules{
		Blocks: []ast.BlockRule{func(b ast.Block) (ast.Block, ast.Action) {
			switch node := b.(type) {
			case ast.DecoratedHeader:
				return ast.Header{
					Level:   levels.levelOf(node.Decoration),
					Content: node.Content,
					Options: assignID(node.Content, node.Options),
				}, ast.Replace
			case ast.Header:
				if node.ID != "" {
					return b, ast.Retain
				}
				node.Options = assignID(node.Content, node.Options)
				return node, ast.Replace
			}
			return b, ast.Retain
		}},
	})
}
