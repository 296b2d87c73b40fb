package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is a printf-style wrapper around slog
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string    `json:"level"`  // debug, info, warn, error
	Format string    `json:"format"` // text or json
	Output io.Writer `json:"-"`      // defaults to stdout
}

// New creates a new slog backed logger
func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: true,
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger that adds the given attributes to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Debug logs debug messages
func (l *Logger) Debug(msg string, args ...any) {
	l.Logger.Debug(formatMessage(msg, args...))
}

// Info logs info messages
func (l *Logger) Info(msg string, args ...any) {
	l.Logger.Info(formatMessage(msg, args...))
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, args ...any) {
	l.Logger.Warn(formatMessage(msg, args...))
}

// Error logs error messages
func (l *Logger) Error(msg string, args ...any) {
	l.Logger.Error(formatMessage(msg, args...))
}

func formatMessage(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

type ctxKey struct{}

// IntoContext stores a request scoped logger in ctx
func IntoContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request scoped logger, or fallback when ctx has none
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return fallback
}

// Global logger instance
var defaultLogger *Logger

// Initialize sets up the global logger
func Initialize(cfg Config) {
	defaultLogger = New(cfg)
}

// Default returns the default logger instance
func Default() *Logger {
	if defaultLogger == nil {
		defaultLogger = New(Config{Level: "info", Format: "text"})
	}
	return defaultLogger
}
