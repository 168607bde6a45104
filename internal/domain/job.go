package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the processing state of an itinerary generation job.
type JobStatus string

// Possible job status values. A job starts as processing and moves exactly
// once to completed or failed; there is no transition out of a terminal state.
const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// MaxDurationDays bounds the trip length so generation cost and latency
// stay bounded. The bound is enforced here rather than trusting the
// generation backend to refuse oversized requests.
const MaxDurationDays = 14

// Common validation errors for Job
var (
	ErrEmptyJobID          = errors.New("job ID cannot be empty")
	ErrEmptyDestination    = errors.New("destination cannot be empty")
	ErrInvalidDurationDays = errors.New("duration days must be between 1 and 14")
	ErrInvalidJobStatus    = errors.New("invalid job status")
	ErrJobAlreadyTerminal  = errors.New("job is already in a terminal state")
	ErrMissingItinerary    = errors.New("completed job must carry an itinerary")
	ErrMissingErrorMessage = errors.New("failed job must carry an error message")
)

// Job is the durable record of one itinerary generation request. It is
// created in the processing state when a submission is accepted and mutated
// exactly once, by the background sequence belonging to that submission,
// into a terminal state.
type Job struct {
	ID           uuid.UUID  `json:"id"`
	Destination  string     `json:"destination"`
	DurationDays int        `json:"durationDays"`
	Status       JobStatus  `json:"status"`
	Itinerary    *Itinerary `json:"itinerary,omitempty"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// NewJob creates a new Job in the processing state for the given destination
// and trip length. It generates a fresh UUID and sets the creation timestamp.
// Returns an error if validation fails; no identifier escapes in that case.
func NewJob(destination string, durationDays int) (*Job, error) {
	job := &Job{
		ID:           uuid.New(),
		Destination:  destination,
		DurationDays: durationDays,
		Status:       JobStatusProcessing,
		CreatedAt:    time.Now().UTC(),
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks the Job's fields and cross-field invariants:
// itinerary and error are mutually exclusive and both absent while
// processing, and completedAt is absent exactly while processing.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return ErrEmptyJobID
	}

	if j.Destination == "" {
		return ErrEmptyDestination
	}

	if j.DurationDays < 1 || j.DurationDays > MaxDurationDays {
		return ErrInvalidDurationDays
	}

	switch j.Status {
	case JobStatusProcessing:
		if j.Itinerary != nil || j.Error != "" || j.CompletedAt != nil {
			return ErrInvalidJobStatus
		}
	case JobStatusCompleted:
		if j.Itinerary == nil {
			return ErrMissingItinerary
		}
		if j.Error != "" || j.CompletedAt == nil {
			return ErrInvalidJobStatus
		}
	case JobStatusFailed:
		if j.Error == "" {
			return ErrMissingErrorMessage
		}
		if j.Itinerary != nil || j.CompletedAt == nil {
			return ErrInvalidJobStatus
		}
	default:
		return ErrInvalidJobStatus
	}

	return nil
}

// IsTerminal reports whether the job has reached a terminal status.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// Complete transitions the job to the completed state with the generated
// itinerary. Returns ErrJobAlreadyTerminal if the job is not processing.
func (j *Job) Complete(itinerary *Itinerary, completedAt time.Time) error {
	if j.IsTerminal() {
		return ErrJobAlreadyTerminal
	}
	if itinerary == nil {
		return ErrMissingItinerary
	}

	j.Status = JobStatusCompleted
	j.Itinerary = itinerary
	j.Error = ""
	at := completedAt.UTC()
	j.CompletedAt = &at
	return nil
}

// Fail transitions the job to the failed state with the captured error
// message. Returns ErrJobAlreadyTerminal if the job is not processing.
func (j *Job) Fail(message string, completedAt time.Time) error {
	if j.IsTerminal() {
		return ErrJobAlreadyTerminal
	}
	if message == "" {
		return ErrMissingErrorMessage
	}

	j.Status = JobStatusFailed
	j.Error = message
	j.Itinerary = nil
	at := completedAt.UTC()
	j.CompletedAt = &at
	return nil
}
