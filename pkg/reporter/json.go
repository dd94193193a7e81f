package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/transform"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	*analysis.Report

	// Errors lists documents that could not be read or parsed.
	Errors []JSONError `json:"errors,omitempty"`

	// Run summarizes discovery and parsing.
	Run JSONRun `json:"run"`
}

// JSONError is a document that failed before link resolution.
type JSONError struct {
	Path  string `json:"path"`
	File  string `json:"file"`
	Error string `json:"error"`
}

// JSONRun contains the statistics of discovery and parsing.
type JSONRun struct {
	DocumentsDiscovered int            `json:"documentsDiscovered"`
	DocumentsParsed     int            `json:"documentsParsed"`
	DocumentsErrored    int            `json:"documentsErrored"`
	StaticDocuments     int            `json:"staticDocuments"`
	Trees               int            `json:"trees"`
	ByFormat            map[string]int `json:"byFormat,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *transform.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Totals.Issues, nil
}

func buildOutput(result *transform.Result) *JSONOutput {
	report, run := parts(result)

	output := &JSONOutput{
		Report: report,
		Run: JSONRun{
			DocumentsDiscovered: run.Stats.DocumentsDiscovered,
			DocumentsParsed:     run.Stats.DocumentsParsed,
			DocumentsErrored:    run.Stats.DocumentsErrored,
			StaticDocuments:     run.Stats.StaticDocuments,
			Trees:               run.Stats.Trees,
			ByFormat:            run.Stats.DocumentsByFormat,
		},
	}
	for _, file := range run.Files {
		if file.Error != nil {
			output.Errors = append(output.Errors, JSONError{
				Path:  file.Path.String(),
				File:  file.File,
				Error: file.Error.Error(),
			})
		}
	}
	return output
}
