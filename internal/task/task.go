package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TaskTypeItineraryGeneration is the task type for generating a travel
	// itinerary from a submitted job.
	TaskTypeItineraryGeneration = "itinerary_generation"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic. Implementations handle their own
	// failure modes internally; a returned error means the task could not
	// bring its work to a recorded outcome.
	Execute(ctx context.Context) error
}

// QueueReader provides read-only access to the task channel, allowing
// workers to consume tasks without the ability to enqueue.
type QueueReader interface {
	// Channel returns a read-only channel for consuming tasks
	Channel() <-chan Task
}

// QueueWriter provides write access to the task queue, allowing services
// to enqueue tasks for processing.
type QueueWriter interface {
	// Enqueue adds a task to the queue for processing.
	// Returns an error if the queue is full or closed.
	Enqueue(task Task) error

	// Close closes the task queue, preventing further task submission
	Close()
}
