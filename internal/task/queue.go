package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the Queue
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// Queue implements a buffered task queue that satisfies both QueueReader
// and QueueWriter.
type Queue struct {
	tasks  chan Task
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

// NewQueue creates a new task queue with the specified buffer size.
func NewQueue(size int, logger *slog.Logger) *Queue {
	return &Queue{
		tasks:  make(chan Task, size),
		logger: logger,
	}
}

// Enqueue adds a task to the queue for processing. Returns an error if the
// queue is full or closed; it never blocks, so a caller holding a request
// open learns immediately whether scheduling succeeded.
func (q *Queue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		q.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(q.tasks),
			"queue_cap", cap(q.tasks))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.tasks))
	}
}

// Close closes the task queue, preventing further task submission. Tasks
// already enqueued remain readable until drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.tasks)
		q.logger.Info("task queue closed")
	}
}

// Channel returns a read-only channel for consuming tasks.
func (q *Queue) Channel() <-chan Task {
	return q.tasks
}
