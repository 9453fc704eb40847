// Package logger provides logging abstractions for sqldialect.
// It supports standard library log/slog and allows custom logger implementations.
package logger

import "log/slog"

// Logger defines the logging interface used by the dialect catalog.
// Implementations should handle structured logging with key-value pairs.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs
	Debug(msg string, args ...any)
	// Info logs informational messages with optional key-value pairs
	Info(msg string, args ...any)
	// Warn logs warning messages with optional key-value pairs
	Warn(msg string, args ...any)
	// Error logs error messages with optional key-value pairs
	Error(msg string, args ...any)
	// With returns a logger that adds args to every record
	With(args ...any) Logger
}

// NoopLogger is a logger that does nothing.
// This is the default logger used when no logger is configured.
type NoopLogger struct{}

// Debug does nothing.
func (n *NoopLogger) Debug(_ string, _ ...any) {}

// Info does nothing.
func (n *NoopLogger) Info(_ string, _ ...any) {}

// Warn does nothing.
func (n *NoopLogger) Warn(_ string, _ ...any) {}

// Error does nothing.
func (n *NoopLogger) Error(_ string, _ ...any) {}

// With returns the receiver.
func (n *NoopLogger) With(_ ...any) Logger { return n }

// SlogAdapter wraps log/slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new logger adapter wrapping an slog.Logger.
// A nil logger is replaced by one that discards every record.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SlogAdapter{logger: logger}
}

// Debug logs a debug-level message with structured key-value pairs.
func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Info logs an info-level message with structured key-value pairs.
func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Warn logs a warning-level message with structured key-value pairs.
func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error logs an error-level message with structured key-value pairs.
func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}

// With returns an adapter whose records carry args.
func (a *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: a.logger.With(args...)}
}
