package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
redis:
  host: localhost
  port: 6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "ffmpeg", cfg.Engine.BinaryPath)
	assert.Equal(t, "ffprobe", cfg.Engine.ProbePath)
	assert.Equal(t, "ffmpeg2theora", cfg.Engine.TheoraPath)
	assert.Equal(t, "/tmp/encode", cfg.Engine.TempDir)
	assert.Equal(t, time.Hour, cfg.Engine.Timeout)
	assert.Equal(t, 2, cfg.Worker.MaxConcurrentTasks)
	assert.Equal(t, 20, cfg.Worker.QueueCapacity)
	assert.Equal(t, "encode.jobs", cfg.Kafka.Topics.EncodeJobs)
	assert.Equal(t, "encode.results", cfg.Kafka.Topics.EncodeResults)
	assert.Equal(t, []string{"localhost:2379"}, cfg.ServiceRegistry.Endpoints)
}

func TestLoadFileValuesWin(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
log:
  level: debug
worker:
  max_concurrent_tasks: 4
engine:
  binary_path: /usr/local/bin/ffmpeg
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Worker.MaxConcurrentTasks)
	assert.Equal(t, 40, cfg.Worker.QueueCapacity)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.Engine.BinaryPath)
}

func TestLoadMinioKeyFallbacks(t *testing.T) {
	path := writeConfig(t, `
minio:
  access_key: shortkey
  secret_key: shortsecret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shortkey", cfg.Minio.AccessKeyID)
	assert.Equal(t, "shortsecret", cfg.Minio.SecretAccessKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetRedisAddr(t *testing.T) {
	c := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", c.GetRedisAddr())
}
