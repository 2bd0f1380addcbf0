// Package logger holds the movectl process logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// L is the global logger instance. It discards all output until Init enables
// a log file.
var L = slog.New(slog.DiscardHandler)

var closer io.Closer

// Options configures the logger initialization.
type Options struct {
	Path  string     // Log file path. Empty disables logging
	Level slog.Level // Minimum level. Zero means LevelInfo
	Text  bool       // Text records instead of JSON
}

// Init configures logging. Call from the root command before any log calls.
// Records are appended to opts.Path; the parent directory is created.
func Init(opts Options) error {
	Close()
	if opts.Path == "" {
		L = slog.New(slog.DiscardHandler)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	closer = f

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Text {
		L = slog.New(slog.NewTextHandler(f, handlerOpts))
	} else {
		L = slog.New(slog.NewJSONHandler(f, handlerOpts))
	}
	return nil
}

// Close flushes and closes the log file, if any, and resets L to discard.
func Close() {
	if closer != nil {
		closer.Close()
		closer = nil
	}
	L = slog.New(slog.DiscardHandler)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
