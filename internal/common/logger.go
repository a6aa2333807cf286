package common

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// ParseLogLevel maps a config string to a LogLevel. Unknown values fall back
// to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "info"
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Logger provides the structured logging interface used across the server.
type Logger struct {
	*slog.Logger
	level LogLevel
}

// NewLogger creates a text logger at the given level writing to stdout.
func NewLogger(level LogLevel) *Logger {
	return NewLoggerTo(os.Stdout, level)
}

// NewLoggerTo creates a text logger writing to w. Pair with io.MultiWriter to
// mirror output into a log file alongside stdout.
func NewLoggerTo(w io.Writer, level LogLevel) *Logger {
	opts := &slog.HandlerOptions{Level: level.ToSlogLevel()}
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, opts)),
		level:  level,
	}
}

// NewJSONLogger creates a structured logger with JSON output
func NewJSONLogger(w io.Writer, level LogLevel) *Logger {
	opts := &slog.HandlerOptions{Level: level.ToSlogLevel()}
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, opts)),
		level:  level,
	}
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
		level:  l.level,
	}
}

// WithTool returns a logger with tool invocation context
func (l *Logger) WithTool(tool string) *Logger {
	return &Logger{
		Logger: l.Logger.With("tool", tool),
		level:  l.level,
	}
}

// Global default logger instance
var defaultLogger = NewLogger(LogLevelInfo)

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetLogger returns the default logger
func GetLogger() *Logger {
	return defaultLogger
}
