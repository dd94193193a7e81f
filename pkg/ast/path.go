package ast

import (
	"path"
	"strings"
)

// Path is an absolute, slash-separated path inside the document tree,
// optionally with a fragment. Paths are comparable and usable as map keys.
type Path struct {
	value    string
	fragment string
}

// Root is the path of the root tree.
var Root = Path{value: "/"}

// ParsePath parses an absolute path with an optional "#fragment".
// Relative input is interpreted relative to Root.
func ParsePath(s string) Path {
	value, fragment, _ := strings.Cut(s, "#")
	return Path{value: path.Clean("/" + value), fragment: fragment}
}

// String returns the path with its fragment.
func (p Path) String() string {
	if p.value == "" {
		return "/"
	}
	if p.fragment != "" {
		return p.value + "#" + p.fragment
	}
	return p.value
}

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool {
	return p.value == "/" || p.value == ""
}

// Name returns the last path segment.
func (p Path) Name() string {
	if p.IsRoot() {
		return ""
	}
	return path.Base(p.value)
}

// Ext returns the file extension of the last segment, including the dot.
func (p Path) Ext() string {
	return path.Ext(p.Name())
}

// Parent returns the enclosing directory path without fragment.
func (p Path) Parent() Path {
	if p.IsRoot() {
		return Root
	}
	return Path{value: path.Dir(p.value)}
}

// Child returns the path of a direct child.
func (p Path) Child(name string) Path {
	return Path{value: path.Join(p.WithoutFragment().String(), name)}
}

// Fragment returns the fragment, without "#".
func (p Path) Fragment() string {
	return p.fragment
}

// WithFragment returns p with the given fragment.
func (p Path) WithFragment(fragment string) Path {
	p.fragment = fragment
	return p
}

// WithoutFragment returns p without fragment.
func (p Path) WithoutFragment() Path {
	p.fragment = ""
	return p
}

// WithExt returns p with the extension of its last segment replaced.
func (p Path) WithExt(ext string) Path {
	if p.IsRoot() {
		return p
	}
	p.value = strings.TrimSuffix(p.value, path.Ext(p.value)) + ext
	return p
}

// IsAncestorOf reports whether other is p or lies below p.
func (p Path) IsAncestorOf(other Path) bool {
	if p.IsRoot() {
		return true
	}
	return other.value == p.value || strings.HasPrefix(other.value, p.value+"/")
}

// Resolve interprets ref relative to the directory p. Absolute refs start
// with "/".
func (p Path) Resolve(ref string) Path {
	if strings.HasPrefix(ref, "/") {
		return ParsePath(ref)
	}
	value, fragment, _ := strings.Cut(ref, "#")
	return Path{value: path.Join(p.WithoutFragment().String(), value), fragment: fragment}
}

// RelativeTo returns p relative to the directory base, keeping the fragment.
func (p Path) RelativeTo(base Path) string {
	from := segments(base.value)
	to := segments(p.value)

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(to)-common)
	for range from[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)

	rel := strings.Join(parts, "/")
	if rel == "" {
		rel = "."
	}
	if p.fragment != "" {
		if rel == "." {
			return "#" + p.fragment
		}
		rel += "#" + p.fragment
	}
	return rel
}

func segments(value string) []string {
	trimmed := strings.Trim(value, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
