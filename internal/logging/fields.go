// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFormat = "format"
	FieldMarkup = "markup"
	FieldJobs   = "jobs"

	// Statistics fields.
	FieldDocuments       = "documents"
	FieldStaticDocuments = "static_documents"
	FieldTrees           = "trees"
	FieldMessages        = "messages"
	FieldWritten         = "written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Message fields.
	FieldLevel = "level"
)
