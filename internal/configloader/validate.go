package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gobwas/glob"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/markup"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "highlight.style").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: html, ast, dump", cfg.Format))
	}
	validateLevel(result, "message_level", cfg.MessageLevel)
	validateLevel(result, "fail_level", cfg.FailLevel)

	if cfg.Report != "" && !cfg.Report.IsValid() {
		result.addError("report", cfg.Report,
			fmt.Sprintf("invalid report format %q; must be one of: text, json, table, summary", cfg.Report))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for ext, format := range cfg.Markup {
		if !strings.HasPrefix(ext, ".") {
			result.addError("markup."+ext, ext, "file extension must start with a dot")
		}
		if format == "" {
			result.addError("markup."+ext, format, "format name must not be empty")
		}
	}

	for i, name := range cfg.Extensions {
		if _, ok := markup.DefaultRegistry.Extension(name); !ok {
			result.addError(fmt.Sprintf("extensions[%d]", i), name,
				fmt.Sprintf("unknown markup extension %q", name))
		}
	}

	if style := cfg.Highlight.Style; style != "" && !slices.Contains(styles.Names(), style) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "highlight.style",
			Value:   style,
			Message: fmt.Sprintf("unknown highlight style %q; the fallback style is used", style),
		})
	}

	validatePatterns(result, "ignore", cfg.Ignore)
	validatePatterns(result, "link_validation.excluded", cfg.LinkValidation.Excluded)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func validateLevel(result *ValidationResult, field, level string) {
	if level == "" {
		return
	}
	if _, err := ast.ParseMessageLevel(level); err != nil {
		result.addError(field, level,
			fmt.Sprintf("invalid message level %q; must be one of: debug, info, warning, error, fatal", level))
	}
}

// validatePatterns checks that patterns compile as globs.
func validatePatterns(result *ValidationResult, field string, patterns []string) {
	for i, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("%s[%d]", field, i), pattern,
				fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
