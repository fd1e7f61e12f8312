// Package logging builds the process logger
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipparndt/gowaypoint/internal/config"
	"github.com/philipparndt/gowaypoint/version"
)

// Logger is a slog logger that may own a rotated log file
type Logger struct {
	*slog.Logger
	LogFile string
	closer  io.Closer
}

// ParseLevel maps a level name to a slog level. ok is false for unknown
// names, which map to info.
func ParseLevel(level string) (lvl slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New creates a logger. Without a log file it writes text to stderr;
// otherwise JSON to a size-rotated file.
func New(cfg config.LogConfig, stderr io.Writer) *Logger {
	if stderr == nil {
		stderr = os.Stderr
	}

	lvl, ok := ParseLevel(cfg.Level)
	if !ok {
		fmt.Fprintf(stderr, "%s: invalid log level, using info\n", cfg.Level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if cfg.File == "" {
		return &Logger{Logger: slog.New(slog.NewTextHandler(stderr, opts))}
	}

	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // MB
		MaxBackups: cfg.MaxBackups,
	}
	l := &Logger{
		Logger:  slog.New(slog.NewJSONHandler(w, opts)),
		LogFile: w.Filename,
		closer:  w,
	}

	l.Info("Hello logging", slog.String("version", version.Version))
	l.Debug("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))
	if bi, ok := debug.ReadBuildInfo(); ok {
		l.Debug("Build", slog.String("Go version", bi.GoVersion), slog.String("Path", bi.Path))
	}

	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close closes the log file, if any
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
