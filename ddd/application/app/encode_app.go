package app

import (
	"context"

	"encode-service/ddd/application/cqe"
	"encode-service/ddd/application/dto"
	"encode-service/ddd/domain/entity"
	"encode-service/ddd/infrastructure/jobstore"
	"encode-service/ddd/infrastructure/queue"
	"encode-service/pkg/errno"
	"encode-service/pkg/logger"
)

// EncodeApp accepts encode commands, persists the job record and hands the
// job to the worker queue.
type EncodeApp struct {
	store *jobstore.Store
	queue queue.JobQueue
}

func NewEncodeApp(store *jobstore.Store, jobQueue queue.JobQueue) *EncodeApp {
	return &EncodeApp{store: store, queue: jobQueue}
}

// CreateEncodeJob validates the command, records the job as queued and
// enqueues it. A full queue rolls the record back to failed.
func (a *EncodeApp) CreateEncodeJob(ctx context.Context, req *cqe.CreateEncodeJobReq) (*dto.EncodeJobDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job := entity.NewEncodeJob(
		req.UserUUID,
		req.VideoUUID,
		req.SourceKey,
		req.Format,
		req.Resolution,
		req.CustomFlags,
		req.ToWatermark(),
	)

	if err := a.store.Create(ctx, job); err != nil {
		return nil, errno.NewBizError(errno.ErrStorage, err)
	}

	if err := a.queue.Enqueue(ctx, job); err != nil {
		job.MarkFailed("queue rejected job: " + err.Error())
		if serr := a.store.SetStatus(ctx, job.JobUUID(), job.Status(), job.ErrorMessage()); serr != nil {
			logger.Errorf("rollback job record, job_uuid=%s err=%v", job.JobUUID(), serr)
		}
		return nil, errno.NewBizError(errno.ErrQueueFull, err)
	}

	logger.Infof("encode job accepted, job_uuid=%s user_uuid=%s format=%s", job.JobUUID(), job.UserUUID(), job.Format())
	return dto.FromEncodeJob(job), nil
}

// GetEncodeJob returns one job's current state.
func (a *EncodeApp) GetEncodeJob(ctx context.Context, req *cqe.GetEncodeJobReq) (*dto.EncodeJobDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job, err := a.store.Get(ctx, req.JobUUID)
	if err != nil {
		return nil, errno.NewBizError(errno.ErrStorage, err)
	}
	if job == nil {
		return nil, errno.ErrEncodeJobNotFound
	}
	return dto.FromEncodeJob(job), nil
}
