package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nahiid-dev/VoyageCraft/internal/domain"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/metrics"
	"github.com/nahiid-dev/VoyageCraft/internal/store"
	"github.com/nahiid-dev/VoyageCraft/internal/task"
)

// TaskRunner defines the interface for registering background tasks.
type TaskRunner interface {
	// Submit registers a task for background execution; a nil return
	// guarantees the task will run even after the caller's request ends.
	Submit(ctx context.Context, t task.Task) error
}

// TaskFactory creates the background task for a job.
type TaskFactory interface {
	// CreateTask creates the generation task for the given job
	CreateTask(job *domain.Job) (task.Task, error)
}

// JobService owns the job submission flow: validate input, persist the
// initial processing record, register the background sequence, and hand the
// identifier back without waiting for generation.
type JobService interface {
	// SubmitJob accepts a generation request. On return the job record
	// already exists in the processing state and exactly one background
	// task has been scheduled for it.
	SubmitJob(ctx context.Context, destination string, durationDays int) (*domain.Job, error)
}

// Common sentinel errors for JobService
var (
	// ErrInvalidInput indicates the submission was rejected before any
	// side effect: no identifier allocated, no record persisted.
	ErrInvalidInput = errors.New("invalid job input")

	// ErrJobCreationFailed indicates the initial record could not be
	// persisted; nothing is observable and nothing runs in the background.
	ErrJobCreationFailed = errors.New("job creation failed")

	// ErrJobNotScheduled indicates the record was created but the
	// background task could not be registered. The record is failed in
	// place so no observer waits on a job that will never run.
	ErrJobNotScheduled = errors.New("job could not be scheduled")
)

// JobServiceError wraps errors from the job service with context.
type JobServiceError struct {
	// Operation is the operation that failed (e.g., "submit_job")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for JobServiceError.
func (e *JobServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("job service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *JobServiceError) Unwrap() error {
	return e.Err
}

// jobServiceImpl implements the JobService interface.
type jobServiceImpl struct {
	jobStore    store.JobStore
	taskFactory TaskFactory
	taskRunner  TaskRunner
	logger      *slog.Logger
}

// NewJobService creates a new JobService.
// It returns an error if any of the required dependencies are nil.
func NewJobService(
	jobStore store.JobStore,
	taskFactory TaskFactory,
	taskRunner TaskRunner,
	logger *slog.Logger,
) (JobService, error) {
	if jobStore == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "jobStore cannot be nil"}
	}
	if taskFactory == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "taskFactory cannot be nil"}
	}
	if taskRunner == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "taskRunner cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &jobServiceImpl{
		jobStore:    jobStore,
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "job_service"),
	}, nil
}

// SubmitJob validates the input, persists the initial processing record and
// registers the background generation task. The record write completes
// before this method returns, so the identifier it hands out always
// resolves to an observable record; a caller's first status check can
// never race the initial write.
func (s *jobServiceImpl) SubmitJob(
	ctx context.Context,
	destination string,
	durationDays int,
) (*domain.Job, error) {
	job, err := domain.NewJob(destination, durationDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.jobStore.CreateJob(ctx, job); err != nil {
		s.logger.Error("failed to persist initial job record",
			"error", err,
			"job_id", job.ID)
		return nil, fmt.Errorf("%w: %v", ErrJobCreationFailed, err)
	}

	t, err := s.taskFactory.CreateTask(job)
	if err != nil {
		return nil, s.failInPlace(ctx, job, "failed to create generation task", err)
	}

	if err := s.taskRunner.Submit(ctx, t); err != nil {
		return nil, s.failInPlace(ctx, job, "failed to schedule generation task", err)
	}

	metrics.IncJobSubmitted()
	s.logger.Info("job submitted",
		"job_id", job.ID,
		"destination", destination,
		"duration_days", durationDays)

	return job, nil
}

// failInPlace handles the narrow window where the record exists but its
// background task will never run: the record is moved to failed so an
// observer is not left polling a processing job forever. The terminal write
// is best effort; if it also fails only the logs carry the loss.
func (s *jobServiceImpl) failInPlace(ctx context.Context, job *domain.Job, message string, cause error) error {
	s.logger.Error(message, "error", cause, "job_id", job.ID)

	if err := s.jobStore.FailJob(ctx, job.ID, fmt.Sprintf("%s: %v", message, cause), time.Now().UTC()); err != nil {
		metrics.IncJobStranded()
		s.logger.Error("failed to mark unscheduled job as failed, job stranded in processing",
			"error", err,
			"job_id", job.ID)
	}

	return fmt.Errorf("%w: %s: %v", ErrJobNotScheduled, message, cause)
}
