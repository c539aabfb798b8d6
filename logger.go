package geovec

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger with geovec-specific context.
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

// WithOp adds an operation name field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// WithShape adds a result shape field to the logger.
func (l *Logger) WithShape(shape []int) *Logger {
	return &Logger{
		Logger: l.Logger.With("shape", shape),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// CallRecord describes one vectorized call for logging and metrics.
type CallRecord struct {
	Op          string
	Shape       []int
	Elements    int
	Missing     int
	KernelCalls int
	Workers     int
}

// LogCall logs a vectorized operation. Each debug record carries a fresh
// call id so concurrent calls can be told apart.
func (l *Logger) LogCall(ctx context.Context, rec CallRecord, err error) {
	if err == nil && !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	cl := l.WithOp(rec.Op).WithShape(rec.Shape)
	if err != nil {
		cl.ErrorContext(ctx, "call failed", "error", err)
		return
	}
	cl.DebugContext(ctx, "call completed",
		"call_id", uuid.NewString(),
		"elements", rec.Elements,
		"missing", rec.Missing,
		"kernel_calls", rec.KernelCalls,
		"workers", rec.Workers,
	)
}

// LogPrepare logs a prepare operation. The count field is the number of
// entries built.
func (l *Logger) LogPrepare(ctx context.Context, prepared, skipped int, err error) {
	pl := l.WithOp("prepare").WithCount(prepared)
	if err != nil {
		pl.ErrorContext(ctx, "prepare failed", "error", err)
	} else {
		pl.DebugContext(ctx, "prepare completed", "skipped", skipped)
	}
}

// LogCoordinates logs a coordinate read, write or transform.
func (l *Logger) LogCoordinates(ctx context.Context, op string, rows, cols int, err error) {
	cl := l.WithOp(op)
	if err != nil {
		cl.WarnContext(ctx, "coordinate access failed",
			"rows", rows,
			"cols", cols,
			"error", err,
		)
	} else {
		cl.DebugContext(ctx, "coordinate access completed",
			"rows", rows,
			"cols", cols,
		)
	}
}
