package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"encode-service/ddd/adapter/component"
	adapterhttp "encode-service/ddd/adapter/http"
	applicationapp "encode-service/ddd/application/app"
	"encode-service/ddd/infrastructure/engine"
	"encode-service/ddd/infrastructure/jobstore"
	"encode-service/ddd/infrastructure/queue"
	"encode-service/ddd/infrastructure/storage"
	"encode-service/ddd/infrastructure/worker"
	"encode-service/internal/resource"
	"encode-service/pkg/config"
	"encode-service/pkg/kafka"
	"encode-service/pkg/logger"
	"encode-service/pkg/observability"
	"encode-service/pkg/registry"
	"encode-service/pkg/task"
)

// Run wires the whole service together and blocks until shutdown.
func Run() {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobalConfig(cfg)
	logger.SetGlobalLogger(logger.NewLogger(cfg))
	observability.StartProfiling("encode-service", cfg.Profiling)

	preflightBinaries(cfg)

	resource.MustInitAll()
	defer resource.CloseAll()

	// assembly
	store := jobstore.New(resource.DefaultRedisResource().Client())
	jobQueue := queue.NewMemoryJobQueue(cfg.Worker.QueueCapacity)
	objectStorage := storage.NewMinioStorage(resource.DefaultMinioResource())
	ffmpeg := engine.NewFFmpegEngine(cfg.Engine.BinaryPath, cfg.Engine.ProbePath, cfg.Engine.Timeout)
	theora := engine.NewTheoraFactory(cfg.Engine.TheoraPath, cfg.Engine.Timeout)
	fs := engine.OSFilesystem{}

	encodeApp := applicationapp.NewEncodeApp(store, jobQueue)

	var publisher worker.ResultPublisher
	if cfg.Kafka.Enabled {
		ensureTopics(cfg)
		publisher = component.NewEncodeResultProducer(cfg)
	}

	pool := worker.NewEncodeWorker(cfg, jobQueue, store, objectStorage, ffmpeg, theora, fs, publisher)
	task.Register(pool)
	if cfg.Kafka.Enabled {
		task.Register(component.NewEncodeJobConsumer(cfg, encodeApp))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := task.StartAll(ctx); err != nil {
		logger.Fatal("start background tasks: ", err)
	}
	defer task.StopAll()

	registerHost := cfg.ServiceRegistry.RegisterHost
	if registerHost == "" {
		registerHost = "localhost"
	}
	serviceAddr := fmt.Sprintf("%s:%d", registerHost, cfg.Server.Port)
	if reg := registerService(cfg, serviceAddr); reg != nil {
		defer func() {
			if err := reg.Deregister(); err != nil {
				logger.Warnf("deregister service: %v", err)
			}
		}()
	}

	router := adapterhttp.NewRouter(cfg, encodeApp)
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("http server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server: ", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http server shutdown: %v", err)
	}
}

// resolveConfigPath picks the config file from CONFIG_PATH, or from
// CONFIG_ENV with a dev default.
func resolveConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

// preflightBinaries verifies the transcoding binaries before accepting work.
// A missing ffmpeg is fatal; the alternate container degrades with a warning.
func preflightBinaries(cfg *config.Config) {
	if _, err := exec.LookPath(cfg.Engine.BinaryPath); err != nil {
		logger.Fatalf("transcode binary %q not found: %v", cfg.Engine.BinaryPath, err)
	}
	if _, err := exec.LookPath(cfg.Engine.ProbePath); err != nil {
		logger.Fatalf("probe binary %q not found: %v", cfg.Engine.ProbePath, err)
	}
	if _, err := exec.LookPath(cfg.Engine.TheoraPath); err != nil {
		logger.Warnf("alternate container binary %q not found, ogv jobs will fail: %v", cfg.Engine.TheoraPath, err)
	}
}

func ensureTopics(cfg *config.Config) {
	client := kafka.DefaultClient()
	for _, topic := range []string{cfg.Kafka.Topics.EncodeJobs, cfg.Kafka.Topics.EncodeResults} {
		if err := client.EnsureTopic(topic, 3, 1); err != nil {
			logger.Warnf("ensure topic %s: %v", topic, err)
		}
	}
}

func registerService(cfg *config.Config, serviceAddr string) *registry.ServiceRegistry {
	if !cfg.ServiceRegistry.Enabled {
		return nil
	}
	reg, err := registry.NewServiceRegistry(
		registry.RegistryConfig{
			Endpoints:   cfg.ServiceRegistry.Endpoints,
			DialTimeout: cfg.ServiceRegistry.DialTimeout,
		},
		registry.ServiceConfig{
			ServiceName:     cfg.ServiceRegistry.ServiceName,
			ServiceID:       cfg.ServiceRegistry.ServiceID,
			TTL:             cfg.ServiceRegistry.TTL,
			RefreshInterval: cfg.ServiceRegistry.RefreshInterval,
		},
		serviceAddr,
	)
	if err != nil {
		logger.Warnf("create service registry: %v", err)
		return nil
	}
	if err := reg.Register(); err != nil {
		logger.Warnf("register service: %v", err)
		return nil
	}
	logger.Infof("service registered, name=%s id=%s addr=%s", cfg.ServiceRegistry.ServiceName, cfg.ServiceRegistry.ServiceID, serviceAddr)
	return reg
}
