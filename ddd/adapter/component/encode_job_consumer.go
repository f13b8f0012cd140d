package component

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"encode-service/ddd/application/app"
	"encode-service/ddd/application/cqe"
	"encode-service/pkg/config"
	"encode-service/pkg/kafka"
	"encode-service/pkg/logger"
)

// EncodeJobConsumer pulls encode commands off the jobs topic and feeds them
// into the application service.
type EncodeJobConsumer struct {
	cfg    *config.Config
	app    *app.EncodeApp
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEncodeJobConsumer(cfg *config.Config, encodeApp *app.EncodeApp) *EncodeJobConsumer {
	return &EncodeJobConsumer{cfg: cfg, app: encodeApp}
}

func (c *EncodeJobConsumer) Name() string { return "encode-job-consumer" }

// Start launches the consume loop.
func (c *EncodeJobConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	topic := c.cfg.Kafka.Topics.EncodeJobs
	reader := kafka.DefaultClient().Reader(topic, c.cfg.Kafka.GroupID)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer reader.Close()

		logger.Infof("job consumer started, topic=%s group=%s", topic, c.cfg.Kafka.GroupID)
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					return
				}
				logger.Warnf("read job message, topic=%s err=%v", topic, err)
				continue
			}
			c.handle(ctx, msg.Value)
		}
	}()
	return nil
}

// Stop cancels the consume loop and waits for it to drain.
func (c *EncodeJobConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return nil
}

func (c *EncodeJobConsumer) handle(ctx context.Context, payload []byte) {
	req := &cqe.CreateEncodeJobReq{}
	if err := json.Unmarshal(payload, req); err != nil {
		logger.Warnf("decode job message: %v", err)
		return
	}

	result, err := c.app.CreateEncodeJob(ctx, req)
	if err != nil {
		logger.Warnf("accept job from topic, video_uuid=%s err=%v", req.VideoUUID, err)
		return
	}
	logger.Infof("job accepted from topic, job_uuid=%s", result.JobUUID)
}
