// Package log provides JSON-lines structured logging for dialog dispatch.
// The library is silent unless a caller installs a logger or sets
// NATIVE_DIALOG_DEBUG=1.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
	}
}

// New creates a JSON-lines logger:
//
//	{"ts":"2026-01-15T10:30:00Z","level":"DEBUG","msg":"backend selected","tool":"zenity"}
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// NewFromEnv returns a debug logger on stderr when NATIVE_DIALOG_DEBUG=1,
// and a discarding logger otherwise.
func NewFromEnv() *slog.Logger {
	if os.Getenv("NATIVE_DIALOG_DEBUG") == "1" {
		return New(&Config{Output: os.Stderr, Debug: true})
	}
	return Discard()
}

// NewFile returns a logger appending to path at level, creating parent
// directories as needed. The file stays open for the life of the process.
func NewFile(path string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(&Config{Output: f, Level: level}), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// LogBackendSelected logs the outcome of backend selection.
func LogBackendSelected(logger *slog.Logger, tool, path string, candidates []string) {
	logger.Debug("backend selected", "tool", tool, "path", path, "candidates", candidates)
}

// LogVersionProbe logs a tool version query. version is empty when parsing failed.
func LogVersionProbe(logger *slog.Logger, tool, version string, elapsed time.Duration) {
	logger.Debug("version probe", "tool", tool, "version", version, "elapsed_ms", elapsed.Milliseconds())
}

// LogDispatch logs the start of a dialog invocation.
func LogDispatch(logger *slog.Logger, invocationID, backend, kind string) {
	logger.Debug("dispatch", "invocation_id", invocationID, "backend", backend, "kind", kind)
}

// LogExtensionRejected logs a save path rejected by the filter set.
func LogExtensionRejected(logger *slog.Logger, invocationID, path string, attempt int) {
	logger.Info("save path rejected", "invocation_id", invocationID, "path", path, "attempt", attempt)
}

// LogBackendFailed logs a failed invocation or selection.
func LogBackendFailed(logger *slog.Logger, invocationID, backend string, err error) {
	logger.Warn("dialog failed", "invocation_id", invocationID, "backend", backend, "error", err)
}

// LogProgressClosed logs a progress handle being closed.
func LogProgressClosed(logger *slog.Logger, invocationID string, cancelled bool) {
	logger.Debug("progress closed", "invocation_id", invocationID, "cancelled", cancelled)
}

// LogInitFailed logs a failed one-time platform initialization.
func LogInitFailed(logger *slog.Logger, err error) {
	logger.Warn("platform initialization failed", "error", err)
}
