package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encode-service/ddd/domain/entity"
)

func newJob() *entity.EncodeJob {
	return entity.NewEncodeJob("user-1", "video-1", "uploads/video-1.avi", "webm", "", "", nil)
}

func TestEnqueueDequeue(t *testing.T) {
	q := NewMemoryJobQueue(4)
	defer q.Close()

	job := newJob()
	require.NoError(t, q.Enqueue(context.Background(), job))
	assert.Equal(t, 1, q.Size())

	got, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, job.JobUUID(), got.JobUUID())
	assert.Equal(t, 0, q.Size())
}

func TestEnqueueFullQueue(t *testing.T) {
	q := NewMemoryJobQueue(1)
	defer q.Close()

	require.NoError(t, q.Enqueue(context.Background(), newJob()))
	err := q.Enqueue(context.Background(), newJob())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full")
}

func TestEnqueueNilJob(t *testing.T) {
	q := NewMemoryJobQueue(1)
	defer q.Close()

	assert.Error(t, q.Enqueue(context.Background(), nil))
}

func TestDequeueRespectsContext(t *testing.T) {
	q := NewMemoryJobQueue(1)
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClosedQueueRejectsEnqueue(t *testing.T) {
	q := NewMemoryJobQueue(1)
	require.NoError(t, q.Close())

	assert.Error(t, q.Enqueue(context.Background(), newJob()))
	assert.NoError(t, q.Close())
}

func TestCloseDrainsPendingJobs(t *testing.T) {
	q := NewMemoryJobQueue(2)
	job := newJob()
	require.NoError(t, q.Enqueue(context.Background(), job))
	require.NoError(t, q.Close())

	got, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, job.JobUUID(), got.JobUUID())

	_, err = q.Dequeue(context.Background())
	assert.Error(t, err)
}
