package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level is the minimum severity a logger emits.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger is the printf-style logger every service receives.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DefaultLogger writes through a slog.Logger.
type DefaultLogger struct {
	level Level
	sl    *slog.Logger
}

// NewDefaultLogger logs human-readable lines to stderr.
func NewDefaultLogger(level Level) *DefaultLogger {
	return newLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level.slogLevel()}), level)
}

// NewJSONLogger logs one JSON object per line to w.
func NewJSONLogger(w io.Writer, level Level) *DefaultLogger {
	return newLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slogLevel()}), level)
}

func newLogger(h slog.Handler, level Level) *DefaultLogger {
	return &DefaultLogger{level: level, sl: slog.New(h)}
}

// With returns a logger that attaches the given key/value pairs to every record.
func (l *DefaultLogger) With(args ...any) *DefaultLogger {
	return &DefaultLogger{level: l.level, sl: l.sl.With(args...)}
}

func (l *DefaultLogger) log(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.sl.Log(context.Background(), level.slogLevel(), fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.log(DebugLevel, format, v...)
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.log(InfoLevel, format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.log(WarnLevel, format, v...)
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.log(ErrorLevel, format, v...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Nop discards everything.
func Nop() Logger {
	return nopLogger{}
}
