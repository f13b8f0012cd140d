package component

import (
	"context"
	"encoding/json"
	"fmt"

	"encode-service/ddd/domain/entity"
	"encode-service/pkg/config"
	"encode-service/pkg/kafka"
)

// EncodeResultProducer publishes terminal job states to the results topic.
type EncodeResultProducer struct {
	cfg *config.Config
}

func NewEncodeResultProducer(cfg *config.Config) *EncodeResultProducer {
	return &EncodeResultProducer{cfg: cfg}
}

type encodeResultEvent struct {
	JobUUID      string `json:"job_uuid"`
	UserUUID     string `json:"user_uuid"`
	VideoUUID    string `json:"video_uuid"`
	Format       string `json:"format"`
	Status       string `json:"status"`
	OutputKey    string `json:"output_key,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// PublishResult emits one event keyed by the video UUID.
func (p *EncodeResultProducer) PublishResult(ctx context.Context, job *entity.EncodeJob) error {
	event := encodeResultEvent{
		JobUUID:      job.JobUUID(),
		UserUUID:     job.UserUUID(),
		VideoUUID:    job.VideoUUID(),
		Format:       job.Format(),
		Status:       job.Status().String(),
		OutputKey:    job.OutputKey(),
		ErrorMessage: job.ErrorMessage(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal result event: %w", err)
	}

	topic := p.cfg.Kafka.Topics.EncodeResults
	return kafka.DefaultClient().Produce(ctx, topic, []byte(job.VideoUUID()), payload)
}
