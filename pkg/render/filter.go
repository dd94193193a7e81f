package render

import "github.com/yaklabco/docweave/pkg/ast"

// FilterMessages replaces diagnostic nodes below min by their fallback
// content. Nodes without a fallback are removed.
func FilterMessages(doc *ast.Document, minLevel ast.MessageLevel) *ast.Document {
	if minLevel <= ast.LevelDebug {
		return doc
	}
	return doc.Rewrite(ast.RewriteRules{
		Blocks: []ast.BlockRule{func(b ast.Block) (ast.Block, ast.Action) {
			invalid, ok := b.(ast.InvalidBlock)
			if !ok || invalid.Message.Level >= minLevel {
				return b, ast.Retain
			}
			if invalid.Fallback == nil {
				return nil, ast.Remove
			}
			return invalid.Fallback, ast.Replace
		}},
		Spans: []ast.SpanRule{func(s ast.Span) (ast.Span, ast.Action) {
			invalid, ok := s.(ast.InvalidSpan)
			if !ok || invalid.Message.Level >= minLevel {
				return s, ast.Retain
			}
			if invalid.Fallback == nil {
				return nil, ast.Remove
			}
			return invalid.Fallback, ast.Replace
		}},
	})
}
