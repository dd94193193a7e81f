package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value and documents the
	// available formats and extensions. If false, generates a minimal
	// commented template.
	Full bool

	// Formats lists the markup formats to document.
	Formats []FormatInfo

	// Extensions lists the markup extensions to document.
	Extensions []FormatInfo
}

// FormatInfo describes a markup format or extension for templates. It
// keeps this package independent of the markup registry.
type FormatInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Extensions  []string `json:"extensions,omitempty"`
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return []byte(minimalTemplate), nil
}

const minimalTemplate = `# docweave configuration
# See: https://github.com/yaklabco/docweave

# Render format: html, ast or dump
format: html

# Lowest message level rendered into output: debug, info, warning, error
# message_level: warning

# Lowest message level that makes "docweave check" fail
# fail_level: error

# Markup extensions enabled for all formats
# extensions:
#   - autolinks

# Map additional file extensions to markup formats
# markup:
#   .txt: rst

# Link definitions visible from every document
# link_targets:
#   home: https://example.com

# Internal links that are not validated (glob patterns)
# link_validation:
#   excluded:
#     - "/drafts/**"

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
`

// generateFullTemplate writes the defaults followed by the documented
// formats and extensions.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# This template includes every setting with its default value.\n\n")

	defaults, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}
	buf.Write(defaults)

	if len(opts.Formats) > 0 {
		buf.WriteString("\n# Markup formats:\n")
		for _, f := range opts.Formats {
			fmt.Fprintf(&buf, "#   %s (%s): %s\n", f.Name, strings.Join(f.Extensions, ", "),
				wrapComment(f.Description, commentWrapWidth))
		}
	}
	if len(opts.Extensions) > 0 {
		buf.WriteString("\n# Markup extensions:\n")
		for _, e := range opts.Extensions {
			fmt.Fprintf(&buf, "#   %s: %s\n", e.Name, wrapComment(e.Description, commentWrapWidth))
		}
	}
	return buf.Bytes(), nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#     ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# docweave configuration
# See: https://github.com/yaklabco/docweave`
}
