package ast

// Action tells a rewrite what to do with a node.
type Action int

const (
	// Retain keeps the node.
	Retain Action = iota
	// Replace substitutes the returned node.
	Replace
	// Remove drops the node from its parent.
	Remove
)

// BlockRule decides the fate of one block.
type BlockRule func(Block) (Block, Action)

// SpanRule decides the fate of one span.
type SpanRule func(Span) (Span, Action)

// RewriteRules are applied bottom-up: a node is offered to the rules only
// after all its children were rewritten. For each node the first rule that
// does not retain it decides.
type RewriteRules struct {
	Blocks []BlockRule
	Spans  []SpanRule
}

// Append returns rules that try r first and then other.
func (r RewriteRules) Append(other RewriteRules) RewriteRules {
	return RewriteRules{
		Blocks: append(append([]BlockRule(nil), r.Blocks...), other.Blocks...),
		Spans:  append(append([]SpanRule(nil), r.Spans...), other.Spans...),
	}
}

// Rewrite returns a copy of the document with rules applied.
func (d *Document) Rewrite(rules RewriteRules) *Document {
	content, changed := rewriteBlocks(d.Content, rules)
	if !changed {
		return d
	}
	return d.WithContent(content)
}

// RewriteBlocks applies rules to blocks. The input is never modified; if
// nothing changed the same slice is returned.
func RewriteBlocks(blocks []Block, rules RewriteRules) []Block {
	out, _ := rewriteBlocks(blocks, rules)
	return out
}

// RewriteSpans applies rules to spans.
func RewriteSpans(spans []Span, rules RewriteRules) []Span {
	out, _ := rewriteSpans(spans, rules)
	return out
}

func rewriteBlocks(blocks []Block, rules RewriteRules) ([]Block, bool) {
	var out []Block
	for idx, b := range blocks {
		nb, action := rewriteBlock(b, rules)
		if action == Retain {
			if out != nil {
				out = append(out, b)
			}
			continue
		}
		if out == nil {
			out = make([]Block, idx, len(blocks))
			copy(out, blocks[:idx])
		}
		if action == Replace {
			out = append(out, nb)
		}
	}
	if out == nil {
		return blocks, false
	}
	return out, true
}

func rewriteBlock(b Block, rules RewriteRules) (Block, Action) {
	cur, changed := b, false
	if c, ok := cur.(BlockContainer); ok {
		if children, ch := rewriteBlocks(c.Blocks(), rules); ch {
			cur, changed = c.WithBlocks(children).(Block), true
		}
	}
	if c, ok := cur.(SpanContainer); ok {
		if children, ch := rewriteSpans(c.Spans(), rules); ch {
			cur, changed = c.WithSpans(children).(Block), true
		}
	}
	for _, rule := range rules.Blocks {
		if nb, action := rule(cur); action != Retain {
			return nb, action
		}
	}
	if changed {
		return cur, Replace
	}
	return b, Retain
}

func rewriteSpans(spans []Span, rules RewriteRules) ([]Span, bool) {
	var out []Span
	for idx, s := range spans {
		ns, action := rewriteSpan(s, rules)
		if action == Retain {
			if out != nil {
				out = append(out, s)
			}
			continue
		}
		if out == nil {
			out = make([]Span, idx, len(spans))
			copy(out, spans[:idx])
		}
		if action == Replace {
			out = append(out, ns)
		}
	}
	if out == nil {
		return spans, false
	}
	return out, true
}

func rewriteSpan(s Span, rules RewriteRules) (Span, Action) {
	cur, changed := s, false
	if c, ok := cur.(SpanContainer); ok {
		if children, ch := rewriteSpans(c.Spans(), rules); ch {
			cur, changed = c.WithSpans(children).(Span), true
		}
	}
	for _, rule := range rules.Spans {
		if ns, action := rule(cur); action != Retain {
			return ns, action
		}
	}
	if changed {
		return cur, Replace
	}
	return s, Retain
}
