package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/dante-lexicon/internal/config"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output (production).
// Format "text" produces human-readable output with source info (development).
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Output is always os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
