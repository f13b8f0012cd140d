package worker

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encode-service/ddd/domain/vo"
	"encode-service/pkg/logger"
)

func countOpenFDs(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	return len(entries)
}

func TestJobLoggerReleasesFile(t *testing.T) {
	if _, err := os.Stat("/proc/self/fd"); err != nil {
		t.Skip("fd accounting not available")
	}
	dir := t.TempDir()

	before := countOpenFDs(t)
	for i := 0; i < 20; i++ {
		log, closeLog := newJobLogger(filepath.Join(dir, fmt.Sprintf("encode-%d.log", i)))
		log.Info("attempt")
		closeLog()
	}
	after := countOpenFDs(t)

	assert.LessOrEqual(t, after, before, "every job log descriptor is released")
}

func TestJobLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "encode.log")

	log, closeLog := newJobLogger(path)
	log.Info("transcode started")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transcode started")
}

func TestJobLoggerFallsBackOnBadPath(t *testing.T) {
	log, closeLog := newJobLogger(filepath.Join(t.TempDir(), "missing", "encode.log"))
	assert.Same(t, logger.Global(), log)
	closeLog()
}

func TestResolveWatermark(t *testing.T) {
	rel := &vo.Watermark{Path: "logo.png", Position: vo.PositionTopLeft}
	got := resolveWatermark(rel, "/opt/assets")
	require.NotNil(t, got)
	assert.Equal(t, "/opt/assets/logo.png", got.Path)
	assert.Equal(t, vo.PositionTopLeft, got.Position)
	assert.Equal(t, "logo.png", rel.Path, "input watermark is not mutated")

	abs := &vo.Watermark{Path: "/etc/logo.png"}
	assert.Same(t, abs, resolveWatermark(abs, "/opt/assets"))

	assert.Same(t, rel, resolveWatermark(rel, ""))
	assert.Nil(t, resolveWatermark(nil, "/opt/assets"))
}
