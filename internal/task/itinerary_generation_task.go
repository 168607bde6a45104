package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nahiid-dev/VoyageCraft/internal/domain"
	"github.com/nahiid-dev/VoyageCraft/internal/generation"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/metrics"
	"github.com/nahiid-dev/VoyageCraft/internal/store"
)

// Common errors
var (
	ErrNilJobStore  = errors.New("job store cannot be nil")
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
	ErrNilJob       = errors.New("job cannot be nil")
)

// ItineraryGenerationTask is the background sequence spawned once per
// accepted submission. It makes a single generation attempt and persists
// the outcome as one atomic partial update against the job record created
// at submission time. Exactly one such task ever exists per job, so the
// terminal write has no competing writers.
type ItineraryGenerationTask struct {
	id        uuid.UUID
	job       *domain.Job
	jobStore  store.JobStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewItineraryGenerationTask creates the background task for a job.
func NewItineraryGenerationTask(
	job *domain.Job,
	jobStore store.JobStore,
	generator generation.Generator,
	logger *slog.Logger,
) (*ItineraryGenerationTask, error) {
	if job == nil {
		return nil, ErrNilJob
	}
	if jobStore == nil {
		return nil, ErrNilJobStore
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &ItineraryGenerationTask{
		id:        uuid.New(),
		job:       job,
		jobStore:  jobStore,
		generator: generator,
		logger:    logger.With("task_type", TaskTypeItineraryGeneration, "job_id", job.ID),
	}, nil
}

// ID returns the task's unique identifier.
func (t *ItineraryGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *ItineraryGenerationTask) Type() string {
	return TaskTypeItineraryGeneration
}

// Execute runs the generation sequence: one generator call, structural
// validation of the result, then a single terminal write. Every failure
// mode before the terminal write is captured into the job's failed record;
// only a failure of the terminal write itself escapes, leaving the job
// stranded in processing for the operator surface to notice.
func (t *ItineraryGenerationTask) Execute(ctx context.Context) error {
	t.logger.Info("starting itinerary generation",
		"destination", t.job.Destination,
		"duration_days", t.job.DurationDays)

	itinerary, genErr := t.generator.GenerateItinerary(ctx, t.job.Destination, t.job.DurationDays)
	if genErr == nil {
		// A misbehaving generator may answer (nil, nil); treat it like any
		// other invalid result so the terminal write still happens.
		if itinerary == nil {
			genErr = fmt.Errorf("%w: generator returned no itinerary", generation.ErrInvalidResponse)
		} else if err := itinerary.Validate(); err != nil {
			genErr = fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
		}
	}

	completedAt := time.Now().UTC()

	if genErr != nil {
		t.logger.Error("itinerary generation failed", "error", genErr)
		if err := t.jobStore.FailJob(ctx, t.job.ID, genErr.Error(), completedAt); err != nil {
			return t.stranded(err)
		}
		metrics.IncJobProcessed(string(domain.JobStatusFailed))
		t.logger.Info("job marked failed")
		return nil
	}

	if err := t.jobStore.CompleteJob(ctx, t.job.ID, itinerary, completedAt); err != nil {
		return t.stranded(err)
	}
	metrics.IncJobProcessed(string(domain.JobStatusCompleted))
	t.logger.Info("job completed", "days", len(itinerary.Days))
	return nil
}

// stranded reports a failed terminal write. The job record still says
// processing and this design has no finalizer retry, so the log line and
// the stranded counter are the only places the loss is visible.
func (t *ItineraryGenerationTask) stranded(err error) error {
	metrics.IncJobStranded()
	t.logger.Error("terminal write failed, job stranded in processing", "error", err)
	return fmt.Errorf("job %s stranded in processing: %w", t.job.ID, err)
}
