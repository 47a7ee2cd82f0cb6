// Package logger provides the process-wide structured logger for exo.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured warning or error, surfaced in the editor status line.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// ring is a fixed-size circular buffer of recent entries.
type ring struct {
	mu      sync.RWMutex
	entries []Entry
	head    int
	count   int
	warns   int
	errors  int
}

func newRing(size int) *ring {
	return &ring{entries: make([]Entry, size)}
}

func (r *ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
	if e.Level >= slog.LevelError {
		r.errors++
	} else {
		r.warns++
	}
}

func (r *ring) all() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, r.count)
	size := len(r.entries)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.head-r.count+i+size)%size]
	}
	return out
}

// captureHandler tees WARN and above into the ring.
type captureHandler struct {
	inner slog.Handler
	ring  *ring
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.ring.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), ring: h.ring}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), ring: h.ring}
}

var (
	// Log is the global structured logger
	Log *slog.Logger
	// LogPath is the path to the current log file
	LogPath string

	writer *lumberjack.Logger
	recent *ring
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger initializes the global logger. An empty logPath means
// ~/.config/exo/exo.log.
func InitLogger(level LogLevel, logPath string) {
	if logPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		dir := filepath.Join(home, ".config", "exo")
		_ = os.MkdirAll(dir, 0755)
		logPath = filepath.Join(dir, "exo.log")
	}
	LogPath = logPath

	writer = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	recent = newRing(64)

	handler := &captureHandler{
		inner: slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level.slog()}),
		ring:  recent,
	}
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Close closes the log file
func Close() {
	if writer != nil {
		writer.Close()
	}
}

func get() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs an info message
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs a warning message
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs an error message
func Error(msg string, args ...any) { get().Error(msg, args...) }

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger { return get().With(args...) }

// Recent returns captured warnings and errors, oldest first.
func Recent() []Entry {
	if recent == nil {
		return nil
	}
	return recent.all()
}

// Counts returns how many warnings and errors have been captured.
func Counts() (warn, err int) {
	if recent == nil {
		return 0, 0
	}
	recent.mu.RLock()
	defer recent.mu.RUnlock()
	return recent.warns, recent.errors
}

// Format renders an entry for a single status line.
func (e Entry) Format() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level.String(), e.Message)
}
