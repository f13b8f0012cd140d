package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"encode-service/ddd/domain/entity"
	"encode-service/ddd/domain/gateway"
	"encode-service/ddd/domain/service"
	"encode-service/ddd/domain/vo"
	"encode-service/ddd/infrastructure/jobstore"
	"encode-service/ddd/infrastructure/queue"
	"encode-service/pkg/config"
	"encode-service/pkg/logger"
)

// ResultPublisher announces finished jobs to downstream consumers. A nil
// publisher disables result events.
type ResultPublisher interface {
	PublishResult(ctx context.Context, job *entity.EncodeJob) error
}

// EncodeWorker drains the job queue with a fixed pool of goroutines. Each
// job is downloaded, encoded in a private working directory and uploaded
// back to object storage.
type EncodeWorker struct {
	cfg       *config.Config
	queue     queue.JobQueue
	store     *jobstore.Store
	storage   gateway.StorageGateway
	engine    gateway.Engine
	alt       gateway.AlternateTranscoderFactory
	fs        gateway.Filesystem
	publisher ResultPublisher

	wg     sync.WaitGroup
	cancel context.CancelFunc

	// logMu serializes encodes that swap the process-wide logger slot.
	logMu sync.Mutex
}

// NewEncodeWorker wires a worker pool over the given collaborators.
func NewEncodeWorker(
	cfg *config.Config,
	jobQueue queue.JobQueue,
	store *jobstore.Store,
	storage gateway.StorageGateway,
	engine gateway.Engine,
	alt gateway.AlternateTranscoderFactory,
	fs gateway.Filesystem,
	publisher ResultPublisher,
) *EncodeWorker {
	return &EncodeWorker{
		cfg:       cfg,
		queue:     jobQueue,
		store:     store,
		storage:   storage,
		engine:    engine,
		alt:       alt,
		fs:        fs,
		publisher: publisher,
	}
}

func (w *EncodeWorker) Name() string { return "encode-worker" }

// Start launches the worker goroutines.
func (w *EncodeWorker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	n := w.cfg.Worker.MaxConcurrentTasks
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
	logger.Infof("encode worker started, workers=%d", n)
	return nil
}

// Stop cancels the workers and waits up to the shutdown grace period.
func (w *EncodeWorker) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	grace := w.cfg.Worker.ShutdownGracePeriod
	if grace <= 0 {
		grace = 10 * time.Second
	}
	select {
	case <-done:
		return nil
	case <-time.After(grace):
		return fmt.Errorf("encode worker shutdown timed out after %s", grace)
	}
}

func (w *EncodeWorker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warnf("dequeue failed, worker=%d err=%v", id, err)
			return
		}
		w.processJob(ctx, job)
	}
}

// processJob runs one encode end to end and records the outcome in the job
// store. Errors are terminal for the job; they are never retried here.
func (w *EncodeWorker) processJob(ctx context.Context, job *entity.EncodeJob) {
	start := time.Now()
	logger.Infof("encode job started, job_uuid=%s format=%s", job.JobUUID(), job.Format())

	outputKey, err := w.execute(ctx, job)
	if err != nil {
		job.MarkFailed(err.Error())
		if serr := w.store.SetStatus(ctx, job.JobUUID(), vo.JobStatusFailed, err.Error()); serr != nil {
			logger.Errorf("record job failure, job_uuid=%s err=%v", job.JobUUID(), serr)
		}
		logger.Errorf("encode job failed, job_uuid=%s elapsed=%s err=%v", job.JobUUID(), time.Since(start), err)
	} else {
		job.MarkCompleted(outputKey)
		if serr := w.store.SetCompleted(ctx, job.JobUUID(), outputKey); serr != nil {
			logger.Errorf("record job completion, job_uuid=%s err=%v", job.JobUUID(), serr)
		}
		logger.Infof("encode job completed, job_uuid=%s output=%s elapsed=%s", job.JobUUID(), outputKey, time.Since(start))
	}

	if w.publisher != nil {
		if perr := w.publisher.PublishResult(ctx, job); perr != nil {
			logger.Warnf("publish job result, job_uuid=%s err=%v", job.JobUUID(), perr)
		}
	}
}

// execute downloads the source, encodes it in a scratch directory and
// uploads the result. It returns the stored output key.
func (w *EncodeWorker) execute(ctx context.Context, job *entity.EncodeJob) (string, error) {
	workDir := filepath.Join(w.cfg.Engine.TempDir, job.JobUUID())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	localPath := filepath.Join(workDir, "source"+sourceExt(job))
	if err := w.storage.DownloadFile(ctx, job.SourceKey(), localPath); err != nil {
		return "", fmt.Errorf("download source %s: %w", job.SourceKey(), err)
	}

	opts := w.buildOptions(ctx, job)
	enc := &service.Encoder{
		Source: localPath,
		Engine: w.engine,
		Alt:    w.alt,
		FS:     w.fs,
	}

	var err error
	if w.cfg.Engine.PerJobLogger {
		jobLog, closeLog := newJobLogger(filepath.Join(workDir, "encode.log"))
		opts.Logger = func() *logrus.Logger { return jobLog }

		// The job logger goes through the shared logger slot, so encodes
		// cannot overlap while it is enabled.
		w.logMu.Lock()
		_, err = w.encodeByFormat(ctx, enc, job, opts)
		w.logMu.Unlock()
		closeLog()
	} else {
		_, err = w.encodeByFormat(ctx, enc, job, opts)
	}
	if err != nil {
		return "", err
	}

	outputKey := fmt.Sprintf("encoded/%s/%s/%s.%s", job.UserUUID(), job.VideoUUID(), job.JobUUID(), job.Format())
	if _, err := w.storage.UploadEncodedFile(ctx, localPath, outputKey, ""); err != nil {
		return "", fmt.Errorf("upload result: %w", err)
	}
	return outputKey, nil
}

func (w *EncodeWorker) encodeByFormat(ctx context.Context, enc *service.Encoder, job *entity.EncodeJob, opts *vo.EncodeOptions) (string, error) {
	if job.Format() == service.AlternateContainerExt {
		return enc.EncodeAlternate(ctx, opts)
	}
	return enc.Encode(ctx, job.Format(), opts)
}

// buildOptions translates the stored job into per-call encode options. The
// hooks keep the job store in step with the attempt.
func (w *EncodeWorker) buildOptions(ctx context.Context, job *entity.EncodeJob) *vo.EncodeOptions {
	opts := &vo.EncodeOptions{
		Resolution:  job.Resolution(),
		CustomFlags: job.CustomFlags(),
		Watermark:   resolveWatermark(job.Watermark(), w.cfg.Worker.WatermarkAssetDir),
	}

	opts.Hooks = vo.EncodeHooks{
		BeforeTranscode: func(format string, _ *vo.EncodeOptions) {
			if err := w.store.SetStatus(ctx, job.JobUUID(), vo.JobStatusProcessing, ""); err != nil {
				logger.Warnf("mark job processing, job_uuid=%s err=%v", job.JobUUID(), err)
			}
		},
		OnError: func(format string, _ *vo.EncodeOptions) {
			logger.Warnf("transcode attempt failed, job_uuid=%s format=%s", job.JobUUID(), format)
		},
		Always: func(format string, _ *vo.EncodeOptions) {
			logger.Debugf("transcode attempt finished, job_uuid=%s format=%s", job.JobUUID(), format)
		},
	}

	return opts
}

// resolveWatermark anchors a relative watermark path under the configured
// asset directory. Absolute paths pass through untouched.
func resolveWatermark(w *vo.Watermark, assetDir string) *vo.Watermark {
	if w == nil || assetDir == "" || filepath.IsAbs(w.Path) {
		return w
	}
	resolved := *w
	resolved.Path = filepath.Join(assetDir, w.Path)
	return &resolved
}

// newJobLogger builds a logger writing to the job's scratch log file and
// returns the func releasing the file. It falls back to the process logger
// when the file cannot be created.
func newJobLogger(path string) (*logrus.Logger, func()) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warnf("open job log %s: %v", path, err)
		return logger.Global(), func() {}
	}
	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l, func() { _ = f.Close() }
}

func sourceExt(job *entity.EncodeJob) string {
	if ext := filepath.Ext(job.SourceKey()); ext != "" {
		return ext
	}
	return ".mp4"
}
