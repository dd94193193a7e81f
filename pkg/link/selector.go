package link

import (
	"fmt"

	"github.com/yaklabco/docweave/pkg/ast"
)

// SelectorKind classifies selectors.
type SelectorKind int

const (
	// KindTargetID selects an element by explicit or derived id.
	KindTargetID SelectorKind = iota
	// KindLinkDefinition selects a link definition by normalized id.
	KindLinkDefinition
	// KindPath selects a document, or a fragment of it, by path.
	KindPath
	// KindAutonumber selects the next automatically numbered footnote.
	KindAutonumber
	// KindAutosymbol selects the next footnote labeled with a symbol.
	KindAutosymbol
	// KindAnonymous selects the next anonymous link definition.
	KindAnonymous
)

// String returns the name of the kind as used in messages.
func (k SelectorKind) String() string {
	switch k {
	case KindTargetID:
		return "target id"
	case KindLinkDefinition:
		return "link definition"
	case KindPath:
		return "path"
	case KindAutonumber:
		return "autonumber"
	case KindAutosymbol:
		return "autosymbol"
	case KindAnonymous:
		return "anonymous link"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Selector is a key identifying a referenceable target. Selectors are
// comparable and used as map keys.
type Selector struct {
	Kind SelectorKind
	Key  string
}

// Sequence selectors, which resolve in order against a queue of targets.
var (
	AutonumberSelector = Selector{Kind: KindAutonumber}
	AutosymbolSelector = Selector{Kind: KindAutosymbol}
	AnonymousSelector  = Selector{Kind: KindAnonymous}
)

// TargetIDSelector selects the element with the given id. The id must
// already be a slug.
func TargetIDSelector(id string) Selector {
	return Selector{Kind: KindTargetID, Key: id}
}

// LinkDefinitionSelector selects the link definition with the given id.
func LinkDefinitionSelector(id string) Selector {
	return Selector{Kind: KindLinkDefinition, Key: NormalizeID(id)}
}

// PathSelector selects a document, or with a fragment an element in it.
func PathSelector(p ast.Path) Selector {
	return Selector{Kind: KindPath, Key: p.String()}
}

// IsSequence reports whether the selector resolves against an ordered queue
// instead of by key.
func (s Selector) IsSequence() bool {
	switch s.Kind {
	case KindAutonumber, KindAutosymbol, KindAnonymous:
		return true
	default:
		return false
	}
}

// IsGlobal reports whether targets of this selector can be referenced from
// other documents.
func (s Selector) IsGlobal() bool {
	return !s.IsSequence()
}

func (s Selector) String() string {
	if s.IsSequence() {
		return s.Kind.String()
	}
	return s.Key
}
