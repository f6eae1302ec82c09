package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup creates the process logger, sets it as the slog default and
// returns it. Subsystems derive their own with
// logger.With("component", ...). The level parameter accepts "debug",
// "info", "warn" or "error" (case-insensitive) and defaults to info.
func Setup(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
