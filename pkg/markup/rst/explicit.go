package rst

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/parse"
)

// explicit parses explicit markup blocks starting with "..": footnotes,
// citations, hyperlink targets, directives and comments.
func (b blocks) explicit(ctx parse.Context) parse.Result[ast.Block] {
	first, next := line(ctx)
	if !strings.HasPrefix(first, "..") || (len(first) > 2 && first[2] != ' ') {
		return fail(ctx, "explicit markup")
	}
	rest := strings.TrimSpace(first[2:])
	body, after := indented(next, 1)

	var block ast.Block
	switch {
	case strings.HasPrefix(rest, "["):
		block = b.footnote(ctx, rest, body)
	case strings.HasPrefix(rest, "_"):
		block = b.target(rest, body)
	default:
		if name, args, ok := directiveHead(rest); ok {
			block = b.directive(ctx, name, args, body)
		}
	}
	if block == nil {
		block = ast.Comment{Text: joinBody(rest, body)}
	}
	return parse.Success(block, after)
}

// footnoteLabel interprets the label of a footnote or footnote reference.
// Labels that are not footnote labels are citation labels.
func footnoteLabel(label string) (ast.FootnoteLabel, bool) {
	switch {
	case label == "#":
		return ast.Autonumber{}, true
	case label == "*":
		return ast.Autosymbol{}, true
	case strings.HasPrefix(label, "#"):
		return ast.AutonumberLabel{Label: label[1:]}, true
	}
	if n, err := strconv.Atoi(label); err == nil && n >= 0 {
		return ast.NumericLabel{Number: n}, true
	}
	return nil, false
}

func isCitationLabel(label string) bool {
	return label != "" && strings.IndexFunc(label, func(r rune) bool {
		return unicode.IsSpace(r) || r == '[' || r == ']'
	}) < 0
}

func (b blocks) footnote(ctx parse.Context, rest string, body []string) ast.Block {
	end := strings.Index(rest, "]")
	if end < 0 {
		return nil
	}
	label := rest[1:end]
	content := b.rec.BlocksOf(ctx, joinBody(rest[end+1:], body))

	if fl, ok := footnoteLabel(label); ok {
		return ast.FootnoteDefinition{Label: fl, Content: content}
	}
	if isCitationLabel(label) {
		return ast.Citation{Label: label, Content: content}
	}
	return nil
}

// target parses hyperlink targets: "_name: url", "__: url" for anonymous
// targets, "_name: other_" for aliases and "_name:" for internal targets.
func (b blocks) target(rest string, body []string) ast.Block {
	def := rest[1:]
	var name string
	switch {
	case strings.HasPrefix(def, "_:"):
		def = def[2:]
	case strings.HasPrefix(def, "`"):
		end := strings.Index(def[1:], "`:")
		if end < 0 {
			return nil
		}
		name = def[1 : end+1]
		def = def[end+3:]
	default:
		end := targetNameEnd(def)
		if end < 0 {
			return nil
		}
		name = unescapeName(def[:end])
		def = def[end+1:]
	}

	value := strings.Join(strings.Fields(joinBody(def, body)), "")
	value = strings.ReplaceAll(value, `\_`, "_")

	switch {
	case value == "":
		if name == "" {
			return nil
		}
		return ast.InternalLinkTarget{Options: ast.Options{ID: name}}
	case isAliasValue(joinBody(def, body)) && name != "":
		return ast.LinkAlias{ID: name, Target: aliasName(joinBody(def, body))}
	case isURL(value):
		return ast.ExternalLinkDefinition{ID: name, URL: value}
	}
	return ast.InternalLinkDefinition{ID: name, Path: value}
}

// targetNameEnd returns the index of the colon ending a target name. The
// colon must be unescaped and followed by whitespace or the end of line.
func targetNameEnd(s string) int {
	for idx := 0; idx < len(s); idx++ {
		switch s[idx] {
		case '\\':
			idx++
		case ':':
			if idx+1 == len(s) || s[idx+1] == ' ' {
				return idx
			}
		}
	}
	return -1
}

func unescapeName(name string) string {
	if !strings.Contains(name, `\`) {
		return name
	}
	var buf strings.Builder
	for idx := 0; idx < len(name); idx++ {
		if name[idx] == '\\' && idx+1 < len(name) {
			idx++
		}
		buf.WriteByte(name[idx])
	}
	return buf.String()
}

// isAliasValue reports whether a target value refers to another target,
// as in "other_" or "`other phrase`_".
func isAliasValue(value string) bool {
	value = strings.TrimSpace(value)
	if !strings.HasSuffix(value, "_") || strings.HasSuffix(value, `\_`) {
		return false
	}
	return !isURL(value)
}

func aliasName(value string) string {
	value = strings.TrimSuffix(strings.TrimSpace(value), "_")
	value = strings.TrimSuffix(strings.TrimPrefix(value, "`"), "`")
	return strings.Join(strings.Fields(value), " ")
}

func isURL(value string) bool {
	if strings.HasPrefix(value, "mailto:") {
		return true
	}
	scheme, _, ok := strings.Cut(value, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, "/.#")
}
