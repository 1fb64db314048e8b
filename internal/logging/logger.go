// Package logging defines the structured-logging interface used across
// bidscurator and its log/slog implementation. Verbosity is chosen once when
// the logger is built and handed to each component explicitly.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "updating file", "acquisition", acqID, "file", name)
type Logger interface {
	// Debug logs progress detail shown only with --verbose or --dry-run.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
