package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger is a levelled logger handed to every pipeline stage.
// It wraps slog so records carry a component attribute and can be
// emitted as text or JSON.
type Logger struct {
	mu    sync.Mutex
	inner *slog.Logger
	file  *os.File
}

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level    slog.Level
	FilePath string // optional; stdout is always included
	JSON     bool
	Output   io.Writer // defaults to os.Stdout
}

// NewLogger builds a logger writing to stdout and, when FilePath is set,
// to an append-only log file.
func NewLogger(opts LoggerOptions) (*Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	writers := []io.Writer{out}

	var f *os.File
	if opts.FilePath != "" {
		var err error
		f, err = os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", opts.FilePath, err)
		}
		writers = append(writers, f)
	}

	mw := io.MultiWriter(writers...)
	hopts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(mw, hopts)
	} else {
		handler = slog.NewTextHandler(mw, hopts)
	}
	return &Logger{inner: slog.New(handler), file: f}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{inner: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a child logger tagged with the given component name.
// The child shares the parent's file handle; only the parent closes it.
func (l *Logger) With(component string) *Logger {
	return &Logger{inner: l.inner.With("component", component)}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) Debug(f string, a ...any) { l.inner.Debug(fmt.Sprintf(f, a...)) }
func (l *Logger) Info(f string, a ...any)  { l.inner.Info(fmt.Sprintf(f, a...)) }
func (l *Logger) Warn(f string, a ...any)  { l.inner.Warn(fmt.Sprintf(f, a...)) }
func (l *Logger) Error(f string, a ...any) { l.inner.Error(fmt.Sprintf(f, a...)) }

// ParseLevel converts "debug", "info", "warn"/"warning" or "error" to a
// slog.Level. ok is false for anything else, in which case Info is returned.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
