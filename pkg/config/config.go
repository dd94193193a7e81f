// Package config defines core configuration types for docweave.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/docweave/pkg/ast"
)

// RenderFormat selects the output written for every resolved document.
type RenderFormat string

const (
	RenderHTML RenderFormat = "html"
	RenderAST  RenderFormat = "ast"
	RenderDump RenderFormat = "dump"
)

// IsValid returns true if the render format is known.
func (f RenderFormat) IsValid() bool {
	switch f {
	case RenderHTML, RenderAST, RenderDump:
		return true
	default:
		return false
	}
}

// Ext returns the file extension of rendered documents.
func (f RenderFormat) Ext() string {
	switch f {
	case RenderHTML:
		return ".html"
	case RenderDump:
		return ".dump"
	default:
		return ".txt"
	}
}

// ReportFormat specifies the output format for diagnostics.
type ReportFormat string

const (
	ReportText    ReportFormat = "text"
	ReportJSON    ReportFormat = "json"
	ReportTable   ReportFormat = "table"
	ReportSummary ReportFormat = "summary"
)

// IsValid returns true if f is a known report format.
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportText, ReportJSON, ReportTable, ReportSummary:
		return true
	default:
		return false
	}
}

// HighlightConfig controls syntax highlighting of code blocks in HTML.
type HighlightConfig struct {
	// Style is a chroma style name.
	Style string `mapstructure:"style" yaml:"style"`

	// LineNumbers adds line numbers to highlighted code.
	LineNumbers bool `mapstructure:"line_numbers" yaml:"line_numbers"`
}

// Config is the root configuration structure for docweave.
type Config struct {
	// Format is the render format for transformed documents.
	Format RenderFormat `mapstructure:"format" yaml:"format"`

	// MessageLevel is the lowest message level shown in rendered output.
	MessageLevel string `mapstructure:"message_level" yaml:"message_level"`

	// FailLevel is the lowest message level that makes check fail.
	FailLevel string `mapstructure:"fail_level" yaml:"fail_level"`

	// Markup maps file extensions to format names, e.g. ".txt": rst.
	Markup map[string]string `mapstructure:"markup" yaml:"markup,omitempty"`

	// Extensions lists the markup extensions enabled for all formats.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Highlight configures code highlighting.
	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight"`

	// LinkValidation applies to the root of every input tree.
	LinkValidation ast.LinkValidation `mapstructure:"link_validation" yaml:"link_validation,omitempty"`

	// LinkTargets are link definitions visible from every document.
	LinkTargets map[string]string `mapstructure:"link_targets" yaml:"link_targets,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Output is the directory rendered documents are written to. Empty
	// means standard output.
	Output string `mapstructure:"output" yaml:"output,omitempty"`

	// CLI-level options (not persisted to config files).

	// Report specifies the diagnostic output format.
	Report ReportFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:       RenderHTML,
		MessageLevel: ast.LevelWarning.String(),
		FailLevel:    ast.LevelError.String(),
		Highlight:    HighlightConfig{Style: "github"},
		Report:       ReportText,
		Jobs:         0, // 0 means use GOMAXPROCS
	}
}

// TreeConfig returns the tree configuration applied to the root of the
// input tree.
func (c *Config) TreeConfig() ast.TreeConfig {
	return ast.TreeConfig{LinkValidation: c.LinkValidation, LinkTargets: c.LinkTargets}
}
