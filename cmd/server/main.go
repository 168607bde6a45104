// Package main implements the entry point for the VoyageCraft API server,
// which accepts itinerary generation jobs and processes them against an
// LLM backend in the background.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/nahiid-dev/VoyageCraft/internal/config"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/logger"
)

// main loads configuration, wires the application and runs the HTTP server
// until a shutdown signal arrives.
func main() {
	ctx := context.Background()

	cfg, logg, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(ctx, cfg, logg)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	logg.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"store_collection", cfg.Store.Collection)

	return cfg, logg, nil
}
