package link

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/cursor"
)

// ResolveDocument rewrites the document at dc, replacing every reference
// with a resolved span or a diagnostic and every target-defining node with
// its final form.
func (ix *Index) ResolveDocument(dc *cursor.DocumentCursor) *ast.Document {
	r := ix.newResolver(dc)
	return r.provider.Document().Rewrite(r.Rules())
}

// Resolver holds the state of one rewrite of one document: the positions
// in the sequence queues and in the list of target-defining nodes.
type Resolver struct {
	ix       *Index
	dc       *cursor.DocumentCursor
	provider *TargetProvider
	queues   map[SelectorKind]int
	blockPos int
	spanPos  int
}

func (ix *Index) newResolver(dc *cursor.DocumentCursor) *Resolver {
	provider, ok := ix.Provider(dc.Path())
	if !ok {
		panic(fmt.Sprintf("link: document %s is not indexed", dc.Path()))
	}
	return &Resolver{ix: ix, dc: dc, provider: provider, queues: make(map[SelectorKind]int)}
}

// Rules returns the rewrite rules of this resolver. They must be applied
// once, to the provider's prepared document.
func (r *Resolver) Rules() ast.RewriteRules {
	return ast.RewriteRules{
		Blocks: []ast.BlockRule{r.rewriteBlock},
		Spans:  []ast.SpanRule{r.rewriteSpan},
	}
}

func (r *Resolver) rewriteBlock(b ast.Block) (ast.Block, ast.Action) {
	if !isTargetBlock(b) {
		return b, ast.Retain
	}
	if r.blockPos >= len(r.provider.blockTargets) {
		panic(fmt.Sprintf("link: target node %T in %s was not collected", b, r.dc.Path()))
	}
	target := r.provider.blockTargets[r.blockPos]
	r.blockPos++
	return target.ReplaceTarget(b)
}

func (r *Resolver) rewriteSpan(s ast.Span) (ast.Span, ast.Action) {
	if ref, ok := s.(ast.Reference); ok {
		return r.validate(r.resolve(ref)), ast.Replace
	}
	action := ast.Retain
	if anchored, ok := r.anchor(s); ok {
		s, action = r.validate(anchored), ast.Replace
	}
	if !isTargetSpan(s) {
		return s, action
	}
	if r.spanPos >= len(r.provider.spanTargets) {
		panic(fmt.Sprintf("link: target span %T in %s was not collected", s, r.dc.Path()))
	}
	target := r.provider.spanTargets[r.spanPos]
	r.spanPos++
	if dup, ok := target.(duplicateTarget); ok {
		return dup.replaceSpan(s), ast.Replace
	}
	return s, action
}

// anchor resolves the relative path of a link or image that the parser
// left without an absolute target path.
func (r *Resolver) anchor(s ast.Span) (ast.Span, bool) {
	withPath := func(t ast.Target) (ast.InternalTarget, bool) {
		internal, ok := t.(ast.InternalTarget)
		if !ok || internal.Path != (ast.Path{}) {
			return internal, false
		}
		internal.Path = destination(internal.Relative, r.dc.Path().Parent(), r.dc.Path())
		return internal, true
	}
	switch node := s.(type) {
	case ast.SpanLink:
		if t, ok := withPath(node.Target); ok {
			node.Target = t
			return node, true
		}
	case ast.Image:
		if t, ok := withPath(node.Target); ok {
			node.Target = t
			return node, true
		}
	}
	return s, false
}

func (r *Resolver) resolve(ref ast.Reference) ast.Span {
	from := r.dc.Path()
	switch node := ref.(type) {
	case ast.LinkIDReference:
		if strings.TrimSpace(node.ID) == "" {
			return r.resolveNext(AnonymousSelector, ref)
		}
		if t, ok := r.lookup(LinkDefinitionSelector(node.ID), TargetIDSelector(Slug(node.ID))); ok {
			return t.ResolveReference(ref, from)
		}
		return unresolved(ref, "unresolved link id reference: %s", node.ID)

	case ast.ImageIDReference:
		if t, ok := r.lookup(LinkDefinitionSelector(node.ID)); ok {
			return t.ResolveReference(ref, from)
		}
		return unresolved(ref, "unresolved image reference: %s", node.ID)

	case ast.FootnoteReference:
		switch label := node.Label.(type) {
		case ast.Autonumber:
			return r.resolveNext(AutonumberSelector, ref)
		case ast.Autosymbol:
			return r.resolveNext(AutosymbolSelector, ref)
		case ast.AutonumberLabel:
			if t, ok := r.local(TargetIDSelector(Slug(label.Label))); ok {
				return t.ResolveReference(ref, from)
			}
		case ast.NumericLabel:
			if t, ok := r.local(TargetIDSelector(strconv.Itoa(label.Number))); ok {
				return t.ResolveReference(ref, from)
			}
		}
		return unresolved(ref, "unresolved footnote reference: %s", describeLabel(node.Label))

	case ast.CitationReference:
		if t, ok := r.lookup(TargetIDSelector(Slug(node.Label))); ok {
			return t.ResolveReference(ref, from)
		}
		return unresolved(ref, "unresolved citation reference: %s", node.Label)

	case ast.PathReference:
		return r.resolvePath(node)
	}
	return unresolved(ref, "unsupported reference type %T", ref)
}

// resolveNext consumes the next target of a sequence selector.
func (r *Resolver) resolveNext(sel Selector, ref ast.Reference) ast.Span {
	pos := r.queues[sel.Kind]
	r.queues[sel.Kind] = pos + 1
	seq, ok := r.provider.local[sel].(sequenceTarget)
	if !ok {
		seq = sequenceTarget{selector: sel}
	}
	return seq.resolveAt(pos, ref, r.dc.Path())
}

// local looks a selector up in the document only.
func (r *Resolver) local(sel Selector) (TargetResolver, bool) {
	return r.provider.Lookup(sel)
}

// lookup searches the document first and then each enclosing tree, from
// the nearest to the root: the tree's title document and the link targets
// of the tree's configuration. All selectors are tried in one scope before
// moving to the next.
func (r *Resolver) lookup(sels ...Selector) (TargetResolver, bool) {
	for _, sel := range sels {
		if t, ok := r.provider.Lookup(sel); ok {
			return t, true
		}
	}
	for _, tree := range r.dc.Parent().Ancestors() {
		if title := tree.TitleDocument(); title != nil && title != r.dc {
			if provider, ok := r.ix.Provider(title.Path()); ok {
				for _, sel := range sels {
					if t, ok := provider.LookupGlobal(sel); ok {
						return t, true
					}
				}
			}
		}
		if targets, ok := r.ix.treeTargets[tree.Path()]; ok {
			for _, sel := range sels {
				if t, ok := targets[sel]; ok {
					return t, true
				}
			}
		}
	}
	return nil, false
}

func (r *Resolver) resolvePath(ref ast.PathReference) ast.Span {
	from := r.dc.Path()
	dest := destination(ref.Path, from.Parent(), from)
	fragment := dest.Fragment()

	if provider, ok := r.ix.Provider(dest); ok {
		lookup := provider.LookupGlobal
		if provider == r.provider {
			lookup = provider.Lookup
		}
		candidates := []Selector{PathSelector(dest)}
		if fragment != "" {
			candidates = append(candidates, PathSelector(dest.WithFragment(Slug(fragment))))
		}
		for _, sel := range candidates {
			if t, ok := lookup(sel); ok {
				return t.ResolveReference(ref, from)
			}
		}
	}
	return ast.SpanLink{
		Content: linkContent(ref, ref.Path),
		Target:  internalTarget(dest, from),
		Title:   ref.Title,
		Options: ref.Options,
	}
}

// validate checks internal targets of resolved spans. A target that does
// not exist becomes a diagnostic unless the target or the referencing
// document is exempt from validation.
func (r *Resolver) validate(span ast.Span) ast.Span {
	var target ast.Target
	switch node := span.(type) {
	case ast.SpanLink:
		target = node.Target
	case ast.Image:
		target = node.Target
	default:
		return span
	}
	internal, ok := target.(ast.InternalTarget)
	if !ok || internal.Validated {
		return span
	}

	if found, ok := r.lookupTarget(internal.Path); ok {
		if found != internal.Path {
			internal = internalTarget(found, r.dc.Path())
		}
		internal.Validated = true
		switch node := span.(type) {
		case ast.SpanLink:
			node.Target = internal
			return node
		case ast.Image:
			node.Target = internal
			return node
		}
	}
	if r.exempt(internal.Path) {
		return span
	}

	msg := ast.NewMessage(ast.LevelError, "unresolved internal reference: %s", internal.Path)
	invalid := ast.NewInvalidSpan(msg, ast.Source{Text: internal.Relative})
	invalid.Fallback = span
	return invalid
}

// lookupTarget reports whether p exists and returns it with its fragment
// normalised to the anchor it matched. A fragment that is not an anchor
// itself is tried again as a slug, the way path references match headers.
func (r *Resolver) lookupTarget(p ast.Path) (ast.Path, bool) {
	root := r.ix.Root()
	if provider, ok := r.ix.Provider(p); ok {
		fragment := p.Fragment()
		switch {
		case fragment == "" || provider.HasAnchor(fragment):
			return p, true
		case provider.HasAnchor(Slug(fragment)):
			return p.WithFragment(Slug(fragment)), true
		}
		return p, false
	}
	if p.Fragment() != "" {
		return p, false
	}
	if root.HasStatic(p) {
		return p, true
	}
	_, isTree := root.SubTree(p)
	return p, isTree
}

// exempt reports whether link validation is disabled for p or for the
// referencing document.
func (r *Resolver) exempt(p ast.Path) bool {
	target := p.WithoutFragment().String()
	source := r.dc.Path().WithoutFragment().String()
	for _, g := range r.ix.excluded[r.dc.Parent().Path()] {
		if g.Match(target) || g.Match(source) {
			return true
		}
	}
	return false
}
