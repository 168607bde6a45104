package task

import (
	"log/slog"

	"github.com/nahiid-dev/VoyageCraft/internal/domain"
	"github.com/nahiid-dev/VoyageCraft/internal/generation"
	"github.com/nahiid-dev/VoyageCraft/internal/store"
)

// ItineraryGenerationTaskFactory creates ItineraryGenerationTask instances
// with the process-wide dependencies already bound, so the orchestrator only
// supplies the job.
type ItineraryGenerationTaskFactory struct {
	jobStore  store.JobStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewItineraryGenerationTaskFactory creates a new factory.
func NewItineraryGenerationTaskFactory(
	jobStore store.JobStore,
	generator generation.Generator,
	logger *slog.Logger,
) *ItineraryGenerationTaskFactory {
	return &ItineraryGenerationTaskFactory{
		jobStore:  jobStore,
		generator: generator,
		logger:    logger.With("component", "itinerary_generation_task_factory"),
	}
}

// CreateTask creates a new ItineraryGenerationTask for the given job.
func (f *ItineraryGenerationTaskFactory) CreateTask(job *domain.Job) (Task, error) {
	return NewItineraryGenerationTask(job, f.jobStore, f.generator, f.logger)
}
