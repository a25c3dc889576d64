package recstore

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with recstore-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithID adds an ID field to the logger (useful for tagging operations).
func (l *Logger) WithID(id uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithColumn adds a column field to the logger.
func (l *Logger) WithColumn(column string) *Logger {
	return &Logger{
		Logger: l.Logger.With("column", column),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, id uint32, inserted bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "insert failed",
			"id", id,
			"error", err,
		)
	case !inserted:
		l.DebugContext(ctx, "insert skipped",
			"id", id,
			"error", ErrDuplicateKey,
		)
	default:
		l.DebugContext(ctx, "insert completed",
			"id", id,
		)
	}
}

// LogBatchInsert logs a batch insert operation.
func (l *Logger) LogBatchInsert(ctx context.Context, count, inserted int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "batch insert failed",
			"total", count,
			"error", err,
		)
	case inserted < count:
		l.WarnContext(ctx, "batch insert skipped duplicates",
			"total", count,
			"inserted", inserted,
			"skipped", count-inserted,
		)
	default:
		l.InfoContext(ctx, "batch insert completed",
			"count", count,
		)
	}
}

// LogQuery logs a query operation.
func (l *Logger) LogQuery(ctx context.Context, column, match string, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"column", column,
			"match", match,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"column", column,
			"match", match,
			"results", results,
		)
	}
}

// LogUnknownColumn logs a query against a column the schema does not declare.
func (l *Logger) LogUnknownColumn(ctx context.Context, column string) {
	l.WarnContext(ctx, "query on unknown column",
		"column", column,
	)
}

// LogImport logs an import operation.
func (l *Logger) LogImport(ctx context.Context, res ImportResult, err error) {
	if err != nil {
		l.ErrorContext(ctx, "import failed",
			"lines", res.Lines,
			"inserted", res.Inserted,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "import completed",
			"lines", res.Lines,
			"inserted", res.Inserted,
			"skipped", res.Skipped,
		)
	}
}
