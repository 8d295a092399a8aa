// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup()                                    // level from LOG_LEVEL env
//	logging.SetupWithLevel(slog.LevelDebug)            // explicit level override
//	logger := logging.New(os.Stderr, slog.LevelWarn)   // standalone logger
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a default logger at the level specified by LOG_LEVEL
// (default: INFO) and returns it.
func Setup() *slog.Logger {
	return SetupWithLevel(LevelFromEnv(slog.LevelInfo))
}

// SetupWithLevel installs a default logger at the given level and returns it.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

// New returns a tint logger writing to w. Color is disabled unless w is
// os.Stderr or os.Stdout.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
		NoColor:    w != os.Stderr && w != os.Stdout,
	}))
}

// LevelFromEnv parses LOG_LEVEL, returning fallback when it is unset or
// unrecognized.
func LevelFromEnv(fallback slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
