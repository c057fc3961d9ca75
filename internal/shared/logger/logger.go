// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"stellar-forge/internal/shared/config"
)

// New builds a logger writing to stdout and installs it as the default.
func New(cfg config.LoggingConfig) *slog.Logger {
	l := NewWithWriter(cfg, os.Stdout)
	slog.SetDefault(l)
	l.With("component", "logger").Debug("Logger initialized",
		"level", cfg.Level,
		"json_format", cfg.JSONFormat,
	)
	return l
}

// NewWithWriter builds a logger without touching the default.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to its slog level. Unknown names log
// everything.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
