// Package logging defines a minimal structured-logging interface used across
// the project. Implementations wrap slog and zap.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "file uploaded", "file_id", id, "size", n)
type Logger interface {
	// Debug logs verbose diagnostics; dropped unless debug mode is on.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// New builds the Logger selected by backend ("slog" or "zap"). Unknown
// backends fall back to slog.
func New(backend string, debug bool) (Logger, error) {
	switch backend {
	case "zap":
		return NewZapProductionLogger(debug)
	default:
		return NewJSONSlogLogger(debug), nil
	}
}
