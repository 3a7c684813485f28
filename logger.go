package matgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with matgo-specific context.
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

// WithFormula adds a formula field to the logger (useful for tagging
// per-composition work).
func (l *Logger) WithFormula(formula string) *Logger {
	return &Logger{
		Logger: l.Logger.With("formula", formula),
	}
}

// WithProperty adds a property field to the logger.
func (l *Logger) WithProperty(property string) *Logger {
	return &Logger{
		Logger: l.Logger.With("property", property),
	}
}

// LogExpand logs a per-atom expansion.
func (l *Logger) LogExpand(ctx context.Context, property, formula string, atoms int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "expand failed",
			"property", property,
			"formula", formula,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "expand completed",
			"property", property,
			"formula", formula,
			"atoms", atoms,
		)
	}
}

// LogFeaturize logs a feature-vector assembly.
func (l *Logger) LogFeaturize(ctx context.Context, formula string, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "featurize failed",
			"formula", formula,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "featurize completed",
			"formula", formula,
			"features", features,
		)
	}
}

// LogFeaturizeBatch logs a batch featurization.
func (l *Logger) LogFeaturizeBatch(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch featurize failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch featurize completed",
			"count", count,
		)
	}
}

// LogTableLoad logs a property table load.
func (l *Logger) LogTableLoad(ctx context.Context, property string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "table load failed",
			"property", property,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "table loaded",
			"property", property,
		)
	}
}

// LogEnergyLookup logs a formation-energy lookup.
func (l *Logger) LogEnergyLookup(ctx context.Context, formula string, candidates int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "energy lookup failed",
			"formula", formula,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "energy lookup completed",
			"formula", formula,
			"candidates", candidates,
		)
	}
}
