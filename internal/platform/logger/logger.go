// Package logger provides structured logging functionality for the application.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nahiid-dev/VoyageCraft/internal/config"
)

// Setup initializes the application's logging system from configuration:
// a structured JSON logger at the configured level, installed as the
// process-wide default so slog package functions work everywhere.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}
