package markup

import (
	"cmp"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"
)

// Registry holds markup formats and extensions.
type Registry struct {
	mu         sync.RWMutex
	formats    map[string]Format
	byExt      map[string]string // file extension -> format name
	extensions map[string]Extension
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		formats:    make(map[string]Format),
		byExt:      make(map[string]string),
		extensions: make(map[string]Extension),
	}
}

// Register adds a format. A format with the same name is replaced.
func (r *Registry) Register(format Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[format.Name] = format
	for _, ext := range format.FileExtensions {
		r.byExt[strings.ToLower(ext)] = format.Name
	}
}

// RegisterExtension adds a markup extension.
func (r *Registry) RegisterExtension(ext Extension) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions[ext.Name] = ext
}

// Get retrieves a format by name.
func (r *Registry) Get(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	format, ok := r.formats[name]
	return format, ok
}

// Extension retrieves an extension by name.
func (r *Registry) Extension(name string) (Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ext, ok := r.extensions[name]
	return ext, ok
}

// ForFile returns the format for a file name. Overrides map file
// extensions to format names and take precedence over the registered
// extensions.
func (r *Registry) ForFile(name string, overrides map[string]string) (Format, error) {
	ext := strings.ToLower(path.Ext(name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	formatName, ok := overrides[ext]
	if !ok {
		formatName, ok = r.byExt[ext]
	}
	if !ok {
		return Format{}, fmt.Errorf("%w: %s", ErrNoParser, name)
	}
	format, ok := r.formats[formatName]
	if !ok {
		return Format{}, fmt.Errorf("%w %q for %s", ErrUnknownFormat, formatName, name)
	}
	return format, nil
}

// IsMarkup reports whether a file would be parsed with some format.
func (r *Registry) IsMarkup(name string, overrides map[string]string) bool {
	_, err := r.ForFile(name, overrides)
	return err == nil
}

// Extensions resolves extension names.
func (r *Registry) Extensions(names []string) ([]Extension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]Extension, 0, len(names))
	for _, name := range names {
		ext, ok := r.extensions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, name)
		}
		exts = append(exts, ext)
	}
	return exts, nil
}

// Formats returns all formats sorted by name.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Format, 0, len(r.formats))
	for _, format := range r.formats {
		result = append(result, format)
	}
	slices.SortFunc(result, func(a, b Format) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}

// AllExtensions returns all extensions sorted by name.
func (r *Registry) AllExtensions() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Extension, 0, len(r.extensions))
	for _, ext := range r.extensions {
		result = append(result, ext)
	}
	slices.SortFunc(result, func(a, b Extension) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}

// DefaultRegistry is the global registry for built-in formats.
// Formats register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for format registration
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.RegisterExtension(Autolinks)
}
