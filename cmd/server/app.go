package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nahiid-dev/VoyageCraft/internal/config"
	"github.com/nahiid-dev/VoyageCraft/internal/generation"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/firestore"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/gemini"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/metrics"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/openai"
	"github.com/nahiid-dev/VoyageCraft/internal/service"
	"github.com/nahiid-dev/VoyageCraft/internal/task"
)

// application holds the wired process dependencies. Everything is
// constructed once here and injected downward; no package reaches for a
// global client.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	jobStore   *firestore.Client
	generator  generation.Generator
	taskRunner *task.Runner
	jobService service.JobService
}

// newApplication wires the store client, the configured generator, the
// supervised task runner and the job service. The runner is started before
// this returns so a submission accepted by the first request already has
// workers behind it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	metrics.MustRegister()

	jobStore, err := firestore.NewClient(ctx, firestore.Config{
		CredentialsJSON: []byte(cfg.Store.CredentialsJSON),
		Collection:      cfg.Store.Collection,
		BaseURL:         cfg.Store.BaseURL,
		Timeout:         time.Duration(cfg.Store.TimeoutSeconds) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create store client: %w", err)
	}

	generator, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	runner := task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	runner.Start()

	factory := task.NewItineraryGenerationTaskFactory(jobStore, generator, logger)

	jobService, err := service.NewJobService(jobStore, factory, runner, logger)
	if err != nil {
		runner.Stop()
		return nil, fmt.Errorf("failed to create job service: %w", err)
	}

	return &application{
		config:     cfg,
		logger:     logger,
		jobStore:   jobStore,
		generator:  generator,
		taskRunner: runner,
		jobService: jobService,
	}, nil
}

// newGenerator selects the content generation backend by configuration.
func newGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return gemini.NewGenerator(ctx, logger, cfg.LLM)
	case "openai":
		return openai.NewGenerator(logger, cfg.LLM)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// cleanup releases application resources. Stopping the runner drains every
// registered background sequence before returning, so an in-flight
// generation is never abandoned by a graceful shutdown.
func (app *application) cleanup() {
	app.logger.Info("draining background tasks")
	app.taskRunner.Stop()
}
