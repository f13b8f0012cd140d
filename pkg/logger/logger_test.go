package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"encode-service/pkg/config"
)

func TestSwapAndRestore(t *testing.T) {
	base := logrus.New()
	SetGlobalLogger(base)

	custom := logrus.New()
	restore := Swap(custom)
	assert.Same(t, custom, Global())

	restore()
	assert.Same(t, base, Global())
}

func TestSwapNilKeepsCurrent(t *testing.T) {
	base := logrus.New()
	SetGlobalLogger(base)

	restore := Swap(nil)
	assert.Same(t, base, Global())
	restore()
	assert.Same(t, base, Global())
}

func TestSetGlobalLoggerIgnoresNil(t *testing.T) {
	base := logrus.New()
	SetGlobalLogger(base)
	SetGlobalLogger(nil)
	assert.Same(t, base, Global())
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	l := NewLogger(cfg)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestNewLoggerBadLevelFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "shout"

	l := NewLogger(cfg)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
