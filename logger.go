package upsetgo

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with chart-build context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSets adds the configured set names to the logger.
func (l *Logger) WithSets(sets []string) *Logger {
	return &Logger{
		Logger: l.Logger.With("sets", sets),
	}
}

// WithRows adds the input row count to the logger.
func (l *Logger) WithRows(rows int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows),
	}
}

// LogAggregate logs the outcome of the intersection aggregation step.
func (l *Logger) LogAggregate(rows, intersections int, err error) {
	if err != nil {
		l.Error("aggregation failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.Debug("aggregation completed",
			"rows", rows,
			"intersections", intersections,
		)
	}
}

// LogBuild logs a completed chart build.
func (l *Logger) LogBuild(sets, intersections, annotations int, duration time.Duration, err error) {
	if err != nil {
		l.Error("chart build failed",
			"sets", sets,
			"error", err,
		)
	} else {
		l.Info("chart build completed",
			"sets", sets,
			"intersections", intersections,
			"annotations", annotations,
			"duration", duration,
		)
	}
}

// LogSave logs a scene save operation.
func (l *Logger) LogSave(path string, bytes int, err error) {
	if err != nil {
		l.Error("scene save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Info("scene saved",
			"path", path,
			"bytes", bytes,
		)
	}
}
