package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig holds the settings Setup needs.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error (case-insensitive).
	Level string
	// Format is "json" (default) or "text".
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// ParseLevel converts a textual log level into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
}

// Setup initializes the application's structured logger and installs it as
// the slog default. An unknown level falls back to info with a warning.
func Setup(cfg LoggerConfig) (*slog.Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level, levelErr := ParseLevel(cfg.Level)

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		handler = slog.NewJSONHandler(out, opts)
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if levelErr != nil {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	return logger, nil
}
