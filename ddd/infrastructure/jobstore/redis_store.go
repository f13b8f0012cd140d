package jobstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"encode-service/ddd/domain/entity"
	"encode-service/ddd/domain/vo"
)

// recordTTL bounds how long a job record survives. Status is operational
// state, not encode history: records expire.
const recordTTL = 24 * time.Hour

const keyPrefix = "encode:jobs:"

// Store keeps ephemeral encode job status in redis hashes.
type Store struct {
	client *redis.Client
}

// New builds a Store on the shared redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func jobKey(jobUUID string) string {
	return keyPrefix + jobUUID
}

// Create writes the initial record for a queued job.
func (s *Store) Create(ctx context.Context, job *entity.EncodeJob) error {
	key := jobKey(job.JobUUID())
	fields := map[string]interface{}{
		"job_uuid":   job.JobUUID(),
		"user_uuid":  job.UserUUID(),
		"video_uuid": job.VideoUUID(),
		"source_key": job.SourceKey(),
		"format":     job.Format(),
		"status":     job.Status().String(),
		"created_at": job.CreatedAt().Format(time.RFC3339),
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("create job record: %w", err)
	}
	return s.client.Expire(ctx, key, recordTTL).Err()
}

// SetStatus updates the status and error message of a job.
func (s *Store) SetStatus(ctx context.Context, jobUUID string, status vo.JobStatus, errorMessage string) error {
	key := jobKey(jobUUID)
	fields := map[string]interface{}{
		"status":     status.String(),
		"error":      errorMessage,
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return nil
}

// SetCompleted marks a job completed with its stored output key.
func (s *Store) SetCompleted(ctx context.Context, jobUUID, outputKey string) error {
	key := jobKey(jobUUID)
	fields := map[string]interface{}{
		"status":     vo.JobStatusCompleted.String(),
		"output_key": outputKey,
		"error":      "",
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("complete job record: %w", err)
	}
	return nil
}

// Get loads a job record; returns nil when the record is absent or expired.
func (s *Store) Get(ctx context.Context, jobUUID string) (*entity.EncodeJob, error) {
	vals, err := s.client.HGetAll(ctx, jobKey(jobUUID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load job record: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	return entity.RestoreEncodeJob(
		vals["job_uuid"],
		vals["user_uuid"],
		vals["video_uuid"],
		vals["source_key"],
		vals["format"],
		vo.JobStatus(vals["status"]),
		vals["output_key"],
		vals["error"],
	), nil
}
