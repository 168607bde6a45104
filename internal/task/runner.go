package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner supervises background task processing. Submission is synchronous:
// once Submit returns nil the task is registered with the runner and will be
// executed even though the submitting request has long since completed.
// Stop drains the queue and waits for in-flight tasks, so a graceful
// shutdown never discards registered work. There is no cancellation of a
// task once it starts: each runs to whatever outcome it can record.
type Runner struct {
	queue      *Queue
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewRunner creates a new Runner.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}

	r := &Runner{
		queue:  NewQueue(config.QueueSize, logger),
		config: config,
		logger: logger,
	}
	r.errHandler = func(task Task, err error) {
		logger.Error("task execution failed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
	}
	return r
}

// SetErrorHandler allows setting a custom handler for task execution
// failures. Call before Start.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit registers a task for background execution. It returns only after
// the task is durably enqueued with the runner; an error means the task was
// not scheduled and will never run.
func (r *Runner) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("submission context done: %w", err)
	}
	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Start launches the worker goroutines.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.logger.Info("task runner started", "workers", r.config.WorkerCount)
}

// Stop shuts the runner down gracefully: no new submissions are accepted,
// already-registered tasks are drained and executed, and Stop returns once
// every worker has finished.
func (r *Runner) Stop() {
	r.queue.Close()
	r.wg.Wait()
	r.logger.Info("task runner stopped")
}

// worker consumes tasks until the queue is closed and drained.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)
	for task := range r.queue.Channel() {
		r.process(task, id)
	}
	r.logger.Debug("stopping worker", "worker_id", id)
}

// process executes a single task. Workers outlive any one task: a panic is
// recovered and routed through the error handler instead of killing the
// worker.
func (r *Runner) process(task Task, workerID int) {
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	logger.Info("processing task")

	err := func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("task panicked: %v", rec)
			}
		}()
		// Tasks run under a fresh context: the triggering request has
		// already completed and must not be able to cancel this work.
		return task.Execute(context.Background())
	}()

	if err != nil {
		r.errHandler(task, err)
		return
	}
	logger.Info("task completed")
}
