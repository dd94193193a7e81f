package cli

import (
	"errors"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/transform"
)

// Signals returned by commands to select the exit code. They are not
// logged as failures.
var (
	// ErrMessagesFound is returned by check when messages at or above the
	// fail level remain after resolution.
	ErrMessagesFound = errors.New("messages at or above the fail level found")

	// ErrDocumentsFailed is returned when markup files could not be read.
	ErrDocumentsFailed = errors.New("documents could not be parsed")
)

// Exit codes for docweave.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitMessagesFound indicates messages at or above the fail level.
	ExitMessagesFound = 1

	// ExitDocumentsFailed indicates markup files that could not be parsed.
	ExitDocumentsFailed = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a check run.
func ExitCodeFromResult(result *transform.Result, failLevel ast.MessageLevel) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Report != nil && result.Report.Totals.AtLeast(failLevel) > 0 {
		return ExitMessagesFound
	}

	if result.Run != nil && result.Run.Stats.DocumentsErrored > 0 {
		return ExitDocumentsFailed
	}

	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMessagesFound):
		return ExitMessagesFound
	case errors.Is(err, ErrDocumentsFailed):
		return ExitDocumentsFailed
	case errors.Is(err, errConfig):
		return ExitConfigError
	}
	return ExitInternalError
}

// IsSignal reports whether err only selects an exit code and needs no log
// output.
func IsSignal(err error) bool {
	return errors.Is(err, ErrMessagesFound) || errors.Is(err, ErrDocumentsFailed)
}

// signalFor converts an exit code into the matching signal error.
func signalFor(code int) error {
	switch code {
	case ExitMessagesFound:
		return ErrMessagesFound
	case ExitDocumentsFailed:
		return ErrDocumentsFailed
	}
	return nil
}
