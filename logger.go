package sievego

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with sieve-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithN adds the sieve bound to the logger.
func (l *Logger) WithN(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("n", n),
	}
}

// WithWorker adds a worker index to the logger.
func (l *Logger) WithWorker(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("worker", id),
	}
}

// LogRun logs a finished run.
func (l *Logger) LogRun(ctx context.Context, primes int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sieve failed",
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "sieve completed",
			"primes", primes,
			"elapsed", elapsed,
		)
	}
}

// LogPhase logs the start of a run phase.
func (l *Logger) LogPhase(ctx context.Context, phase string, dispatched int64) {
	l.DebugContext(ctx, "phase",
		"phase", phase,
		"dispatched", dispatched,
	)
}

// LogPrime logs one seed prime handled by a worker.
func (l *Logger) LogPrime(ctx context.Context, prime, cleared int) {
	l.DebugContext(ctx, "prime processed",
		"prime", prime,
		"cleared", cleared,
	)
}

// LogSnapshot logs a snapshot save.
func (l *Logger) LogSnapshot(ctx context.Context, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogLoad logs a snapshot load.
func (l *Logger) LogLoad(ctx context.Context, name string, primes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot loaded",
			"name", name,
			"primes", primes,
		)
	}
}
