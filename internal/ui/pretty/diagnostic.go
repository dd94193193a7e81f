package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/ast"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
//
//	/guide/intro.rst:4:3  error  unresolved link id reference: ref
//	        ref_
//	        ^
func (s *Styles) FormatDiagnostic(entry analysis.DiagnosticEntry, showContext bool) string {
	var builder strings.Builder

	location := s.DocumentPath.Render(entry.Path)
	if entry.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", entry.Line, entry.Column))
	}

	fmt.Fprintf(&builder, "  %s  %s  %s\n",
		location,
		s.FormatLevel(entry.Level),
		s.Message.Render(entry.Message),
	)

	if showContext && entry.Source != "" {
		builder.WriteString(s.FormatSourceContext(entry.Source, entry.Line > 0))
	}

	return builder.String()
}

// FormatLevel returns a styled level name.
func (s *Styles) FormatLevel(level ast.MessageLevel) string {
	return s.Level(level).Render(level.String())
}

// FormatSourceContext formats the markup a diagnostic replaced. Only the
// first line is shown; a caret marks its start when the position is known.
func (s *Styles) FormatSourceContext(source string, marked bool) string {
	const indent = "        "

	line, _, multiline := strings.Cut(source, "\n")
	if multiline {
		line += " " + s.Dim.Render("...")
	}

	var builder strings.Builder
	builder.WriteString(indent + s.SourceText.Render(line) + "\n")
	if marked {
		builder.WriteString(indent + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatDocumentHeader formats a document header for grouped output.
func (s *Styles) FormatDocumentHeader(path string, issueCount int) string {
	header := s.DocumentPath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatParseError formats a document that could not be read or parsed.
func (s *Styles) FormatParseError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.DocumentPath.Render(path), s.Fatal.Render(fmt.Sprintf("error: %v", err)))
}
