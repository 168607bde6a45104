package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nahiid-dev/VoyageCraft/internal/domain"
)

// JobStore defines the persistence contract the job orchestrator consumes.
// The backing store is an external document store keyed by job ID; the two
// write operations map onto a single atomic insert and a single atomic
// partial update, which is all the concurrency discipline this design needs:
// each job record has exactly one writer lineage.
type JobStore interface {
	// CreateJob inserts the initial record for a job in the processing
	// state. It is a strict insert: if a record already occupies the job's
	// key it fails with ErrJobAlreadyExists rather than overwriting.
	CreateJob(ctx context.Context, job *domain.Job) error

	// CompleteJob transitions an existing record to the completed state in
	// one partial update carrying only status, itinerary and completedAt.
	// Fails with ErrJobNotFound if no record exists for the ID.
	CompleteJob(ctx context.Context, id uuid.UUID, itinerary *domain.Itinerary, completedAt time.Time) error

	// FailJob transitions an existing record to the failed state in one
	// partial update carrying only status, error and completedAt.
	// Fails with ErrJobNotFound if no record exists for the ID.
	FailJob(ctx context.Context, id uuid.UUID, errorMessage string, completedAt time.Time) error
}
