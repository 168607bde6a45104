package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahiid-dev/VoyageCraft/internal/config"
	"github.com/nahiid-dev/VoyageCraft/internal/task"
)

type stubTask struct {
	id uuid.UUID
}

func (s *stubTask) ID() uuid.UUID                     { return s.id }
func (s *stubTask) Type() string                      { return task.TaskTypeItineraryGeneration }
func (s *stubTask) Execute(ctx context.Context) error { return nil }

// TestStartHTTPServer_DrainsRunnerOnShutdown checks the shutdown path always
// stops the task runner: after startHTTPServer returns, a registered task
// has been executed and new submissions are refused.
func TestStartHTTPServer_DrainsRunnerOnShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := task.NewRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, logger)
	runner.Start()

	app := &application{
		config:     &config.Config{Server: config.ServerConfig{Port: 0}},
		logger:     logger,
		taskRunner: runner,
	}

	require.NoError(t, runner.Submit(context.Background(), &stubTask{id: uuid.New()}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.startHTTPServer(ctx, http.NotFoundHandler())
	}()

	// Give the server a moment to come up, then trigger shutdown through
	// the server context rather than an OS signal.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	// The runner was drained and closed as part of shutdown.
	err := runner.Submit(context.Background(), &stubTask{id: uuid.New()})
	assert.ErrorIs(t, err, task.ErrQueueClosed)
}
