package core

import (
	"context"
	"log/slog"
)

// Context keys for import options
type contextKey string

const (
	loggerKey   contextKey = "logger"
	importIDKey contextKey = "importID"
)

var discardLogger = slog.New(slog.DiscardHandler)

// WithLogger attaches a structured logger for pipeline diagnostics.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFrom returns the context logger, or one that discards everything.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return discardLogger
}

// withImportID records the import run a document belongs to.
func withImportID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, importIDKey, id)
}

// getImportID returns the import run ID from context
func getImportID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(importIDKey).(int64)
	return id, ok
}
