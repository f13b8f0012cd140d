package dto

import (
	"encode-service/ddd/domain/entity"
)

// EncodeJobDTO is the API representation of an encode job.
type EncodeJobDTO struct {
	JobUUID      string `json:"job_uuid"`
	UserUUID     string `json:"user_uuid"`
	VideoUUID    string `json:"video_uuid"`
	SourceKey    string `json:"source_key"`
	Format       string `json:"format"`
	Status       string `json:"status"`
	OutputKey    string `json:"output_key,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// FromEncodeJob maps the entity onto its DTO.
func FromEncodeJob(job *entity.EncodeJob) *EncodeJobDTO {
	if job == nil {
		return nil
	}
	return &EncodeJobDTO{
		JobUUID:      job.JobUUID(),
		UserUUID:     job.UserUUID(),
		VideoUUID:    job.VideoUUID(),
		SourceKey:    job.SourceKey(),
		Format:       job.Format(),
		Status:       job.Status().String(),
		OutputKey:    job.OutputKey(),
		ErrorMessage: job.ErrorMessage(),
	}
}
