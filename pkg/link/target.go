package link

import (
	"fmt"
	"strings"

	"github.com/yaklabco/docweave/pkg/ast"
)

// TargetResolver resolves references to one target and rewrites the node
// defining it. Resolvers are built once per document and never modified
// afterwards, so they can be shared between concurrent rewrites.
type TargetResolver interface {
	// Selector returns the key the target is registered under.
	Selector() Selector

	// ResolveReference returns the span replacing ref, a reference made from
	// the document at path from.
	ResolveReference(ref ast.Reference, from ast.Path) ast.Span

	// ReplaceTarget rewrites the node defining the target.
	ReplaceTarget(node ast.Block) (ast.Block, ast.Action)
}

// linkContent returns the link text of ref, falling back to text.
func linkContent(ref ast.Reference, fallback string) []ast.Span {
	if c, ok := ref.(ast.SpanContainer); ok && len(c.Spans()) > 0 {
		return c.Spans()
	}
	return []ast.Span{ast.Text{Content: fallback}}
}

// internalTarget returns an unvalidated target for p as seen from the
// document at from.
func internalTarget(p ast.Path, from ast.Path) ast.InternalTarget {
	return ast.InternalTarget{Path: p, Relative: p.RelativeTo(from.Parent())}
}

// linkTo builds the span a reference to a target at dest resolves to.
func linkTo(ref ast.Reference, target ast.Target, title, fallback string) ast.Span {
	switch r := ref.(type) {
	case ast.ImageIDReference:
		return ast.Image{Alt: r.Alt, Target: target, Title: title, Options: r.Options}
	case ast.FootnoteReference, ast.CitationReference:
		return ast.SpanLink{Content: []ast.Span{ast.Text{Content: ref.SourceText().Text}}, Target: target, Title: title}
	default:
		return ast.SpanLink{Content: linkContent(ref, fallback), Target: target, Title: title, Options: ref.Opts()}
	}
}

// elementTarget is any element with an explicit or derived id, headers
// included.
type elementTarget struct {
	selector Selector
	doc      ast.Path
	id       string
	title    string
}

func (t elementTarget) Selector() Selector { return t.selector }

func (t elementTarget) ResolveReference(ref ast.Reference, from ast.Path) ast.Span {
	return linkTo(ref, internalTarget(t.doc.WithFragment(t.id), from), "", t.title)
}

func (t elementTarget) ReplaceTarget(node ast.Block) (ast.Block, ast.Action) {
	if node.Opts().ID == t.id {
		return node, ast.Retain
	}
	return ast.WithID(node, t.id), ast.Replace
}

// documentTarget is a whole document.
type documentTarget struct {
	doc   ast.Path
	title string
}

func (t documentTarget) Selector() Selector { return PathSelector(t.doc) }

func (t documentTarget) ResolveReference(ref ast.Reference, from ast.Path) ast.Span {
	return linkTo(ref, internalTarget(t.doc, from), "", t.title)
}

func (t documentTarget) ReplaceTarget(node ast.Block) (ast.Block, ast.Action) {
	return node, ast.Retain
}

// citationTarget is a citation block.
type citationTarget struct {
	label string
	doc   ast.Path
}

func citationID(label string) string {
	return "__cit-" + Slug(label)
}

func (t citationTarget) Selector() Selector { return TargetIDSelector(Slug(t.label)) }

func (t citationTarget) ResolveReference(ref ast.Reference, from ast.Path) ast.Span {
	id := citationID(t.label)
	if _, ok := ref.(ast.CitationReference); ok && from == t.doc {
		return ast.CitationLink{Ref: id, Label: "[" + t.label + "]", Options: ref.Opts()}
	}
	return linkTo(ref, internalTarget(t.doc.WithFragment(id), from), "", "["+t.label+"]")
}

func (t citationTarget) ReplaceTarget(node ast.Block) (ast.Block, ast.Action) {
	return ast.WithID(node, citationID(t.label)), ast.Replace
}

// footnoteTarget is a footnote definition with its final label.
type footnoteTarget struct {
	selector Selector
	doc      ast.Path
	id       string
	label    string
}

func (t footnoteTarget) Selector() Selector { return t.selector }

func (t footnoteTarget) ResolveReference(ref ast.Reference, from ast.Path) ast.Span {
	if _, ok := ref.(ast.FootnoteReference); ok && from == t.doc {
		return ast.FootnoteLink{Ref: t.id, Label: t.label, Options: ref.Opts()}
	}
	return linkTo(ref, internalTarget(t.doc.WithFragment(t.id), from), "", t.label)
}

func (t footnoteTarget) ReplaceTarget(node ast.Block) (ast.Block, ast.Action) {
	def, ok := node.(ast.FootnoteDefinition)
	if !ok {
		return ast.WithID(node, t.id), ast.Replace
	}
	return ast.Footnote{Label: t.label, Content: def.Content, Options: def.Options.WithID(t.id)}, ast.Replace
}

// definitionTarget is an external or internal link definition. Definitions
// have no visual representation and are removed from the tree.
type definitionTarget struct {
	selector Selector
	target   ast.Target
	title    string
}

func (t definitionTarget) Selector() Selector { return t.selector }

func (t definitionTarget) ResolveReference(ref ast.Reference, from ast.Path) ast.Span {
	target := t.target
	if internal, ok := target.(ast.InternalTarget); ok {
		target = internalTarget(internal.Path, from)
	}
	return linkTo(ref, target, t.title, t.target.String())
}

func (t definitionTarget) ReplaceTarget(ast.Block) (ast.Block, ast.Action) {
	return nil, ast.Remove
}

// newDefinitionTarget interprets dest as a URL when it has a scheme and as a
// path otherwise. Paths are relative to the directory dir; a bare fragment
// refers to self.
func newDefinitionTarget(sel Selector, dest, title string, dir, self ast.Path) definitionTarget {
	if isURL(dest) {
		return definitionTarget{selector: sel, target: ast.ExternalTarget{URL: dest}, title: title}
	}
	return definitionTarget{selector: sel, target: ast.InternalTarget{Path: destination(dest, dir, self)}, title: title}
}

// destination resolves a path written in a document.
func destination(dest string, dir, self ast.Path) ast.Path {
	if fragment, ok := strings.CutPrefix(dest, "#"); ok {
		return self.WithoutFragment().WithFragment(fragment)
	}
	return dir.Resolve(dest)
}

func isURL(dest string) bool {
	if strings.HasPrefix(dest, "mailto:") {
		return true
	}
	scheme, _, found := strings.Cut(dest, "://")
	return found && scheme != "" && !strings.ContainsAny(scheme, "/#")
}

// aliasTarget is a link alias. A resolved alias resolves references like
// its final target; a failed one resolves every reference to a diagnostic.
// The alias node itself is always removed.
type aliasTarget struct {
	selector Selector
	resolved TargetResolver
	failure  string
}

func (t aliasTarget) Selector() Selector { return t.selector }

func (t aliasTarget) ResolveReference(ref ast.Reference, from ast.Path) ast.Span {
	if t.resolved == nil {
		return ast.NewInvalidSpan(ast.NewMessage(ast.LevelError, "%s", t.failure), ref.SourceText())
	}
	return t.resolved.ResolveReference(ref, from)
}

func (t aliasTarget) ReplaceTarget(ast.Block) (ast.Block, ast.Action) {
	return nil, ast.Remove
}

// duplicateTarget replaces a unique selector defined more than once. Every
// reference to it and every defining node become diagnostics.
type duplicateTarget struct {
	selector Selector
	doc      ast.Path
}

func (t duplicateTarget) Selector() Selector { return t.selector }

func (t duplicateTarget) ResolveReference(ref ast.Reference, _ ast.Path) ast.Span {
	msg := ast.NewMessage(ast.LevelError, "ambiguous reference to duplicate %s '%s' in document %s",
		t.selector.Kind, t.selector.Key, t.doc)
	return ast.NewInvalidSpan(msg, ref.SourceText())
}

func (t duplicateTarget) ReplaceTarget(node ast.Block) (ast.Block, ast.Action) {
	return ast.NewInvalidBlock(t.message(), ast.Source{Text: t.selector.Key}, node), ast.Replace
}

func (t duplicateTarget) replaceSpan(node ast.Span) ast.Span {
	invalid := ast.NewInvalidSpan(t.message(), ast.Source{Text: t.selector.Key})
	invalid.Fallback = node
	return invalid
}

func (t duplicateTarget) message() ast.RuntimeMessage {
	return ast.NewMessage(ast.LevelError, "duplicate %s '%s' in document %s", t.selector.Kind, t.selector.Key, t.doc)
}

// sequenceTarget holds the targets of one sequence selector in document
// order. The position in the queue is owned by each rewrite, never by the
// target itself.
type sequenceTarget struct {
	selector Selector
	targets  []TargetResolver
}

func (t sequenceTarget) Selector() Selector { return t.selector }

// ResolveReference resolves against the first target. Rewrites use
// resolveAt to consume the queue in order.
func (t sequenceTarget) ResolveReference(ref ast.Reference, from ast.Path) ast.Span {
	return t.resolveAt(0, ref, from)
}

func (t sequenceTarget) resolveAt(pos int, ref ast.Reference, from ast.Path) ast.Span {
	if pos >= len(t.targets) {
		return ast.NewInvalidSpan(ast.NewMessage(ast.LevelError, "too many %s references", t.selector.Kind), ref.SourceText())
	}
	return t.targets[pos].ResolveReference(ref, from)
}

func (t sequenceTarget) ReplaceTarget(node ast.Block) (ast.Block, ast.Action) {
	return node, ast.Retain
}

// unresolved returns the diagnostic for a reference with no target.
func unresolved(ref ast.Reference, format string, args ...any) ast.Span {
	return ast.NewInvalidSpan(ast.NewMessage(ast.LevelError, format, args...), ref.SourceText())
}

func describeLabel(label ast.FootnoteLabel) string {
	return fmt.Sprintf("[%s]", label)
}
