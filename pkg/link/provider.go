package link

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/docweave/pkg/ast"
)

// TargetProvider holds every link target of one document.
//
// Building a provider prepares the document first: decorated headers get
// their levels and every header without an explicit id gets a unique id
// derived from its text. References are later resolved against the
// prepared document returned by Document.
type TargetProvider struct {
	path     ast.Path
	document *ast.Document
	local    map[Selector]TargetResolver
	global   map[Selector]TargetResolver

	// Final ids of all elements that can be linked to by fragment.
	anchors map[string]bool

	// Replacers for target-defining nodes, in the order a rewrite visits
	// them.
	blockTargets []TargetResolver
	spanTargets  []TargetResolver
}

// definition is one target contributed by one node.
type definition struct {
	resolver TargetResolver
	alias    string
	isAlias  bool
	span     bool
}

// NewTargetProvider collects the targets of doc.
func NewTargetProvider(doc *ast.Document) *TargetProvider {
	prepared := prepareDocument(doc)

	c := &collector{doc: prepared.Path}
	ast.RewriteBlocks(prepared.Content, ast.RewriteRules{
		Blocks: []ast.BlockRule{c.block},
		Spans:  []ast.SpanRule{c.span},
	})

	p := &TargetProvider{
		path:     prepared.Path,
		document: prepared,
		local:    make(map[Selector]TargetResolver),
		global:   make(map[Selector]TargetResolver),
		anchors:  make(map[string]bool),
	}
	p.build(c.defs)
	return p
}

// Path returns the document path.
func (p *TargetProvider) Path() ast.Path { return p.path }

// Document returns the prepared document references are resolved in.
func (p *TargetProvider) Document() *ast.Document { return p.document }

// Local returns the targets referenceable within the document.
// The map must not be modified.
func (p *TargetProvider) Local() map[Selector]TargetResolver { return p.local }

// Global returns the targets referenceable from other documents.
// The map must not be modified.
func (p *TargetProvider) Global() map[Selector]TargetResolver { return p.global }

// Lookup returns the local target for sel.
func (p *TargetProvider) Lookup(sel Selector) (TargetResolver, bool) {
	r, ok := p.local[sel]
	return r, ok
}

// LookupGlobal returns the global target for sel.
func (p *TargetProvider) LookupGlobal(sel Selector) (TargetResolver, bool) {
	r, ok := p.global[sel]
	return r, ok
}

func (p *TargetProvider) build(defs []definition) {
	selectorOf := func(idx int) Selector { return defs[idx].resolver.Selector() }
	indices := lo.Range(len(defs))
	order := lo.Uniq(lo.Map(indices, func(idx int, _ int) Selector { return selectorOf(idx) }))
	groups := lo.GroupBy(indices, selectorOf)

	// Unique selectors defined more than once become duplicates; sequence
	// selectors collect their targets in document order.
	resolved := make(map[Selector]TargetResolver)
	aliases := make(map[Selector]string)
	for _, sel := range order {
		members := groups[sel]
		switch {
		case sel.IsSequence():
			seq := sequenceTarget{selector: sel}
			for _, idx := range members {
				seq.targets = append(seq.targets, defs[idx].resolver)
			}
			p.local[sel] = seq
		case len(members) > 1:
			resolved[sel] = duplicateTarget{selector: sel, doc: p.path}
		case defs[members[0]].isAlias:
			aliases[sel] = defs[members[0]].alias
		default:
			resolved[sel] = defs[members[0]].resolver
		}
	}

	for sel, r := range resolved {
		p.local[sel] = r
	}
	ar := aliasResolver{aliases: aliases, resolved: resolved}
	for sel := range aliases {
		p.local[sel] = ar.resolve(sel)
	}

	// Replacers follow the definition order. Members of a duplicate group
	// are replaced by the duplicate target.
	for _, def := range defs {
		sel := def.resolver.Selector()
		replacer := def.resolver
		if dup, ok := resolved[sel].(duplicateTarget); ok {
			replacer = dup
		} else if id, ok := anchorOf(def.resolver); ok {
			p.anchors[id] = true
		}
		if def.span {
			p.spanTargets = append(p.spanTargets, replacer)
		} else {
			p.blockTargets = append(p.blockTargets, replacer)
		}
	}

	title := ast.ExtractText(p.document.Title())
	p.local[PathSelector(p.path)] = documentTarget{doc: p.path, title: title}

	for sel, r := range p.local {
		if !sel.IsGlobal() {
			continue
		}
		p.global[sel] = r
		if sel.Kind == KindTargetID {
			mirror := PathSelector(p.path.WithFragment(sel.Key))
			p.global[mirror] = r
		}
	}
	// Mirrored path selectors are referenceable locally as well.
	for sel, r := range p.global {
		if _, ok := p.local[sel]; !ok {
			p.local[sel] = r
		}
	}
}

// HasAnchor reports whether the document has an element with the final id.
func (p *TargetProvider) HasAnchor(id string) bool {
	return p.anchors[id]
}

func anchorOf(r TargetResolver) (string, bool) {
	switch t := r.(type) {
	case elementTarget:
		return t.id, true
	case citationTarget:
		return citationID(t.label), true
	case footnoteTarget:
		return t.id, true
	}
	return "", false
}

// aliasResolver follows alias chains without recursion.
type aliasResolver struct {
	aliases  map[Selector]string
	resolved map[Selector]TargetResolver
}

func (ar aliasResolver) resolve(start Selector) aliasTarget {
	visited := make(map[Selector]bool)
	cur := start
	for {
		if visited[cur] {
			return aliasTarget{selector: start, failure: fmt.Sprintf("circular link reference: %s", cur.Key)}
		}
		visited[cur] = true

		name, isAlias := ar.aliases[cur]
		if !isAlias {
			if r, ok := ar.resolved[cur]; ok {
				return aliasTarget{selector: start, resolved: r}
			}
			return aliasTarget{selector: start, failure: fmt.Sprintf("unresolved link alias: %s", cur.Key)}
		}
		cur = ar.step(name)
	}
}

// step returns the selector an alias target name refers to: a link
// definition or alias of that name, or else an element with that id.
func (ar aliasResolver) step(name string) Selector {
	def := LinkDefinitionSelector(name)
	if _, ok := ar.aliases[def]; ok {
		return def
	}
	if _, ok := ar.resolved[def]; ok {
		return def
	}
	if id := TargetIDSelector(Slug(name)); ar.resolved[id] != nil {
		return id
	}
	return def
}

// collector records definitions while a no-op rewrite walks the document,
// so that definitions line up with the nodes a later rewrite visits.
type collector struct {
	doc     ast.Path
	defs    []definition
	numbers int
	symbols int
}

func (c *collector) block(b ast.Block) (ast.Block, ast.Action) {
	if def, ok := c.definitionOf(b); ok {
		c.defs = append(c.defs, def)
	}
	return b, ast.Retain
}

func (c *collector) span(s ast.Span) (ast.Span, ast.Action) {
	if _, isRef := s.(ast.Reference); isRef {
		return s, ast.Retain
	}
	if id := s.Opts().ID; id != "" {
		sel := TargetIDSelector(targetID(id))
		c.defs = append(c.defs, definition{
			resolver: elementTarget{selector: sel, doc: c.doc, id: sel.Key, title: id},
			span:     true,
		})
	}
	return s, ast.Retain
}

func (c *collector) definitionOf(b ast.Block) (definition, bool) {
	switch node := b.(type) {
	case ast.Citation:
		return definition{resolver: citationTarget{label: node.Label, doc: c.doc}}, true

	case ast.FootnoteDefinition:
		return definition{resolver: c.footnote(node.Label)}, true

	case ast.ExternalLinkDefinition:
		sel := definitionSelector(node.ID)
		return definition{resolver: definitionTarget{selector: sel, target: ast.ExternalTarget{URL: node.URL}, title: node.Title}}, true

	case ast.InternalLinkDefinition:
		sel := definitionSelector(node.ID)
		return definition{resolver: newDefinitionTarget(sel, node.Path, node.Title, c.doc.Parent(), c.doc)}, true

	case ast.LinkAlias:
		sel := LinkDefinitionSelector(node.ID)
		return definition{resolver: aliasTarget{selector: sel}, alias: node.Target, isAlias: true}, true

	case ast.Header:
		sel := TargetIDSelector(targetID(node.ID))
		return definition{resolver: elementTarget{selector: sel, doc: c.doc, id: sel.Key, title: ast.ExtractText(node.Content)}}, true
	}

	if id := b.Opts().ID; id != "" {
		sel := TargetIDSelector(targetID(id))
		return definition{resolver: elementTarget{selector: sel, doc: c.doc, id: sel.Key, title: id}}, true
	}
	return definition{}, false
}

func (c *collector) footnote(label ast.FootnoteLabel) TargetResolver {
	switch l := label.(type) {
	case ast.Autonumber:
		c.numbers++
		num := strconv.Itoa(c.numbers)
		return footnoteTarget{selector: AutonumberSelector, doc: c.doc, id: "__fn-" + num, label: num}
	case ast.AutonumberLabel:
		c.numbers++
		id := Slug(l.Label)
		return footnoteTarget{selector: TargetIDSelector(id), doc: c.doc, id: id, label: strconv.Itoa(c.numbers)}
	case ast.NumericLabel:
		num := strconv.Itoa(l.Number)
		return footnoteTarget{selector: TargetIDSelector(num), doc: c.doc, id: "__fnl-" + num, label: num}
	default:
		c.symbols++
		return footnoteTarget{
			selector: AutosymbolSelector,
			doc:      c.doc,
			id:       "__fns-" + strconv.Itoa(c.symbols),
			label:    FootnoteSymbol(c.symbols),
		}
	}
}

// isTargetBlock reports whether the collector records a definition for b.
func isTargetBlock(b ast.Block) bool {
	switch b.(type) {
	case ast.Citation, ast.FootnoteDefinition, ast.ExternalLinkDefinition,
		ast.InternalLinkDefinition, ast.LinkAlias, ast.Header:
		return true
	}
	return b.Opts().ID != ""
}

// isTargetSpan reports whether the collector records a definition for s.
func isTargetSpan(s ast.Span) bool {
	if _, isRef := s.(ast.Reference); isRef {
		return false
	}
	return s.Opts().ID != ""
}

func definitionSelector(id string) Selector {
	if strings.TrimSpace(id) == "" {
		return AnonymousSelector
	}
	return LinkDefinitionSelector(id)
}

// targetID returns the final id of an element. Generated ids, which start
// with two underscores, are kept as they are.
func targetID(id string) string {
	if strings.HasPrefix(id, "__") {
		return id
	}
	return Slug(id)
}
