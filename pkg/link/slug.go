package link

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug converts arbitrary text to an id safe for URLs and HTML.
//
// Diacritics are folded to their base letters, letters are lowercased,
// whitespace, underscores, dots and hyphens become single hyphens and any
// other character is dropped. Text that leaves nothing behind maps to a
// stable hash-based id, so every input yields a non-empty id.
func Slug(text string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}

	var buf strings.Builder
	buf.Grow(len(folded))
	pendingHyphen := false

	for _, ch := range strings.ToLower(folded) {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			if pendingHyphen && buf.Len() > 0 {
				buf.WriteByte('-')
			}
			pendingHyphen = false
			buf.WriteRune(ch)
		case ch == '-' || ch == '_' || ch == '.' || unicode.IsSpace(ch):
			pendingHyphen = true
		}
		// Other characters are dropped.
	}

	if buf.Len() == 0 {
		hash := fnv.New32a()
		_, _ = hash.Write([]byte(text)) // hash.Hash never returns an error
		return fmt.Sprintf("id-%08x", hash.Sum32())
	}
	return buf.String()
}

// NormalizeID normalizes a link definition id for matching: case is
// ignored and runs of whitespace compare equal.
func NormalizeID(id string) string {
	return strings.ToLower(strings.Join(strings.Fields(id), " "))
}

// idRegistry hands out unique ids, appending -1, -2, ... to repeated bases.
type idRegistry struct {
	used map[string]bool
}

func newIDRegistry(reserved ...string) *idRegistry {
	reg := &idRegistry{used: make(map[string]bool, len(reserved))}
	for _, id := range reserved {
		reg.used[id] = true
	}
	return reg
}

func (r *idRegistry) unique(base string) string {
	id := base
	for count := 1; r.used[id]; count++ {
		id = base + "-" + strconv.Itoa(count)
	}
	r.used[id] = true
	return id
}
