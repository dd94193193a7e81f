package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// FromContext returns the logger stored in ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithDocument derives a logger that tags every record with the document
// path and markup format, and stores it in ctx. Workers call it once per
// document so parser diagnostics need not repeat the fields.
func WithDocument(ctx context.Context, path, format string) context.Context {
	logger := FromContext(ctx).With(FieldPath, path, FieldMarkup, format)
	return WithLogger(ctx, logger)
}
