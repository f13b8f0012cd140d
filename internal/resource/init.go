package resource

import (
	pkgkafka "encode-service/pkg/kafka"
	"encode-service/pkg/logger"
)

// MustInitAll opens the shared resources in dependency order. Panics on any
// failure; the service cannot run degraded.
func MustInitAll() {
	DefaultRedisResource().MustOpen()
	DefaultMinioResource().MustOpen()
	pkgkafka.DefaultClient().MustOpen()
	logger.Info("resources initialized")
}

// CloseAll releases the shared resources in reverse order.
func CloseAll() {
	pkgkafka.DefaultClient().Close()
	DefaultMinioResource().Close()
	DefaultRedisResource().Close()
}
