package entity

import (
	"time"

	"github.com/google/uuid"

	"encode-service/ddd/domain/vo"
)

// EncodeJob is one requested encode of a stored source object.
type EncodeJob struct {
	jobUUID      string
	userUUID     string
	videoUUID    string
	sourceKey    string
	format       string
	resolution   string
	customFlags  string
	watermark    *vo.Watermark
	status       vo.JobStatus
	outputKey    string
	errorMessage string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewEncodeJob creates a queued job with a fresh UUID.
func NewEncodeJob(userUUID, videoUUID, sourceKey, format, resolution, customFlags string, watermark *vo.Watermark) *EncodeJob {
	now := time.Now()
	return &EncodeJob{
		jobUUID:     uuid.New().String(),
		userUUID:    userUUID,
		videoUUID:   videoUUID,
		sourceKey:   sourceKey,
		format:      format,
		resolution:  resolution,
		customFlags: customFlags,
		watermark:   watermark,
		status:      vo.JobStatusQueued,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RestoreEncodeJob rebuilds a job from stored state.
func RestoreEncodeJob(jobUUID, userUUID, videoUUID, sourceKey, format string, status vo.JobStatus, outputKey, errorMessage string) *EncodeJob {
	return &EncodeJob{
		jobUUID:      jobUUID,
		userUUID:     userUUID,
		videoUUID:    videoUUID,
		sourceKey:    sourceKey,
		format:       format,
		status:       status,
		outputKey:    outputKey,
		errorMessage: errorMessage,
	}
}

func (j *EncodeJob) JobUUID() string          { return j.jobUUID }
func (j *EncodeJob) UserUUID() string         { return j.userUUID }
func (j *EncodeJob) VideoUUID() string        { return j.videoUUID }
func (j *EncodeJob) SourceKey() string        { return j.sourceKey }
func (j *EncodeJob) Format() string           { return j.format }
func (j *EncodeJob) Resolution() string       { return j.resolution }
func (j *EncodeJob) CustomFlags() string      { return j.customFlags }
func (j *EncodeJob) Watermark() *vo.Watermark { return j.watermark }
func (j *EncodeJob) Status() vo.JobStatus     { return j.status }
func (j *EncodeJob) OutputKey() string        { return j.outputKey }
func (j *EncodeJob) ErrorMessage() string     { return j.errorMessage }
func (j *EncodeJob) CreatedAt() time.Time     { return j.createdAt }
func (j *EncodeJob) UpdatedAt() time.Time     { return j.updatedAt }

// MarkProcessing transitions the job into the processing state.
func (j *EncodeJob) MarkProcessing() {
	j.status = vo.JobStatusProcessing
	j.errorMessage = ""
	j.updatedAt = time.Now()
}

// MarkCompleted records the stored output key and completes the job.
func (j *EncodeJob) MarkCompleted(outputKey string) {
	j.status = vo.JobStatusCompleted
	j.outputKey = outputKey
	j.errorMessage = ""
	j.updatedAt = time.Now()
}

// MarkFailed records the failure message.
func (j *EncodeJob) MarkFailed(message string) {
	j.status = vo.JobStatusFailed
	j.errorMessage = message
	j.updatedAt = time.Now()
}
