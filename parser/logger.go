package parser

import (
	"context"
	"log/slog"
)

// Logger receives diagnostics from the parser, schema, validator and differ
// packages. Attributes are alternating keys and values, as in log/slog:
//
//	logger.Warn("unresolved reference", "ref", "#/$defs/Missing", "pointer", "/properties/a")
//
// Wrap a *slog.Logger with [NewSlogAdapter]; any other logging library can be
// plugged in with a small adapter of its own.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a Logger that adds attrs to every message.
	With(attrs ...any) Logger
}

// NopLogger discards everything. It is used wherever no Logger was configured.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any) {}
func (NopLogger) Warn(string, ...any) {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter sends messages to a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) emit(level slog.Level, msg string, attrs []any) {
	s.logger.Log(context.Background(), level, msg, attrs...)
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.emit(slog.LevelDebug, msg, attrs) }
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.emit(slog.LevelInfo, msg, attrs) }
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.emit(slog.LevelWarn, msg, attrs) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.emit(slog.LevelError, msg, attrs) }

func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)

// OrNop returns l, or NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
