// Package log defines the public logging interface used across logzen packages.
package log

import (
	"context"
	// Use standard library's structured logging level type.
	"log/slog"
)

// Severity levels understood by logzen. Debug, Info, Warn and Error match the
// slog levels; Default and Fault fill the severities in between and above.
const (
	LevelDebug   = slog.LevelDebug
	LevelInfo    = slog.LevelInfo
	LevelDefault = slog.Level(2)
	LevelWarn    = slog.LevelWarn
	LevelError   = slog.LevelError
	LevelFault   = slog.Level(12)
)

// Logger defines the public interface for logging operations within logzen.
// Log handles are bound to a Logger by attaching their subsystem and category
// attributes with With.
type Logger interface {
	// Debugf logs a formatted message at the DEBUG level.
	// Arguments are handled in the manner of fmt.Sprintf.
	Debugf(format string, args ...interface{})
	// Infof logs a formatted message at the INFO level.
	Infof(format string, args ...interface{})
	// Defaultf logs a formatted message at the DEFAULT level.
	Defaultf(format string, args ...interface{})
	// Warnf logs a formatted message at the WARN level.
	Warnf(format string, args ...interface{})
	// Errorf logs a formatted message at the ERROR level. If the last argument
	// is an error, its logging description is attached as the "error" attribute.
	Errorf(format string, args ...interface{})
	// Faultf logs a formatted message at the FAULT level, with the same
	// trailing-error handling as Errorf.
	Faultf(format string, args ...interface{})

	// Log logs a message at the specified slog.Level with additional key-value attributes.
	Log(level slog.Level, msg string, args ...interface{})
	// LogCtx logs a message at the specified slog.Level, including trace IDs
	// carried by ctx when the implementation supports it.
	LogCtx(ctx context.Context, level slog.Level, msg string, args ...interface{})

	// With returns a new Logger instance with the specified attributes added
	// to all subsequent log entries.
	With(args ...interface{}) Logger
	// WithLevel returns a new Logger that additionally drops records below level.
	WithLevel(level slog.Leveler) Logger
	// IsEnabled checks if the logger is configured to output logs at the given level.
	IsEnabled(level slog.Level) bool
}
