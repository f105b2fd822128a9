// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Warn level): the
	// library is consumed by interactive tools, so stay quiet by default.
	InitLogger(LevelWarn, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// SaveEvent logs a bookmarks save with common fields.
func SaveEvent(path string, nodes int, skipped bool, args ...any) {
	allArgs := []any{
		"path", path,
		"nodes", nodes,
		"skipped", skipped,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("bookmarks_save", allArgs...)
}

// LoadEvent logs a bookmarks load with common fields.
func LoadEvent(path string, nodes int, args ...any) {
	allArgs := []any{
		"path", path,
		"nodes", nodes,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("bookmarks_load", allArgs...)
}

// RegistryEvent logs module registry activity.
func RegistryEvent(event string, moduleCount int, args ...any) {
	allArgs := []any{
		"event", event,
		"module_count", moduleCount,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("registry_event", allArgs...)
}

// UnresolvedModule logs a bookmark referencing a module that is not installed.
func UnresolvedModule(moduleName, key string, args ...any) {
	allArgs := []any{
		"module", moduleName,
		"key", key,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Debug("unresolved_module", allArgs...)
}
