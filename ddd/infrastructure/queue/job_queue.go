package queue

import (
	"context"
	"fmt"
	"sync"

	"encode-service/ddd/domain/entity"
)

// JobQueue hands encode jobs from the intake adapters to the worker pool.
type JobQueue interface {
	// Enqueue adds a job without blocking; a full queue is an error.
	Enqueue(ctx context.Context, job *entity.EncodeJob) error

	// Dequeue blocks until a job or ctx cancellation.
	Dequeue(ctx context.Context) (*entity.EncodeJob, error)

	// Size returns the number of waiting jobs.
	Size() int

	// Close shuts the queue down.
	Close() error
}

// MemoryJobQueue is a bounded in-process queue.
type MemoryJobQueue struct {
	queue  chan *entity.EncodeJob
	closed bool
	mu     sync.RWMutex
}

// NewMemoryJobQueue creates a queue with the given capacity.
func NewMemoryJobQueue(capacity int) JobQueue {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryJobQueue{
		queue: make(chan *entity.EncodeJob, capacity),
	}
}

// Enqueue adds a job without blocking.
func (q *MemoryJobQueue) Enqueue(ctx context.Context, job *entity.EncodeJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}

	select {
	case q.queue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("queue is full")
	}
}

// Dequeue blocks until a job is available or ctx is cancelled.
func (q *MemoryJobQueue) Dequeue(ctx context.Context) (*entity.EncodeJob, error) {
	select {
	case job, ok := <-q.queue:
		if !ok {
			return nil, fmt.Errorf("queue is closed")
		}
		return job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the number of waiting jobs.
func (q *MemoryJobQueue) Size() int {
	return len(q.queue)
}

// Close shuts the queue down; pending jobs drain through Dequeue.
func (q *MemoryJobQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.queue)
	return nil
}
