package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"pdf-field-editor/internal/domain"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// AppLogger implements the domain.Logger interface
type AppLogger struct {
	level  LogLevel
	logger *slog.Logger
}

// NewLogger creates a new logger writing to stdout.
// format is "json" or "text".
func NewLogger(levelStr, format string) domain.Logger {
	return NewLoggerWithWriter(os.Stdout, levelStr, format)
}

// NewLoggerWithWriter creates a logger writing to w.
func NewLoggerWithWriter(w io.Writer, levelStr, format string) domain.Logger {
	level := parseLogLevel(levelStr)
	opts := &slog.HandlerOptions{Level: level.slogLevel()}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &AppLogger{
		level:  level,
		logger: slog.New(handler),
	}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	if l.level <= INFO {
		l.log(slog.LevelInfo, msg, fields...)
	}
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	if l.level <= ERROR {
		allFields := append([]interface{}{"error", err}, fields...)
		l.log(slog.LevelError, msg, allFields...)
	}
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	if l.level <= DEBUG {
		l.log(slog.LevelDebug, msg, fields...)
	}
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	if l.level <= WARN {
		l.log(slog.LevelWarn, msg, fields...)
	}
}

func (l *AppLogger) log(level slog.Level, msg string, fields ...interface{}) {
	// A dangling key without a value is dropped.
	if len(fields)%2 != 0 {
		fields = fields[:len(fields)-1]
	}
	l.logger.Log(context.Background(), level, msg, fields...)
}

func (lv LogLevel) slogLevel() slog.Level {
	switch lv {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseLogLevel converts string log level to LogLevel enum
func parseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}
