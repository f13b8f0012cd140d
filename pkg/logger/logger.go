// Package logger owns the process-wide logger slot. All diagnostic output
// from the service funnels through the slot so an encode call can substitute
// its own logger for the duration of one operation.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"encode-service/pkg/config"
)

var (
	mu     sync.RWMutex
	global = defaultLogger()
)

func defaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// NewLogger builds a logrus logger from service configuration.
func NewLogger(cfg *config.Config) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch cfg.Log.Output {
	case "", "stdout":
		l.SetOutput(os.Stdout)
	case "stderr":
		l.SetOutput(os.Stderr)
	default:
		f, err := os.OpenFile(cfg.Log.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.SetOutput(os.Stdout)
			l.Warnf("log file not writable, falling back to stdout path=%s error=%s", cfg.Log.Output, err.Error())
		} else {
			l.SetOutput(f)
		}
	}

	return l
}

// SetGlobalLogger installs l as the process-wide logger.
func SetGlobalLogger(l *logrus.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// Global returns the current process-wide logger.
func Global() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Swap installs l into the slot and returns a restore func that puts the
// previous logger back. The restore must run on every exit path; callers
// defer it immediately.
//
// Overlapping swap/restore windows from concurrent calls are not safe: one
// call's restore can clobber another's swap. Callers serialize operations
// that swap the slot.
func Swap(l *logrus.Logger) (restore func()) {
	mu.Lock()
	prev := global
	if l != nil {
		global = l
	}
	mu.Unlock()

	return func() {
		mu.Lock()
		global = prev
		mu.Unlock()
	}
}

// SetOutput redirects the current global logger, primarily for tests.
func SetOutput(w io.Writer) {
	Global().SetOutput(w)
}

// WithFields opens a structured entry on the global logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Global().WithFields(fields)
}

func Debug(args ...interface{}) { Global().Debug(args...) }
func Info(args ...interface{})  { Global().Info(args...) }
func Warn(args ...interface{})  { Global().Warn(args...) }
func Error(args ...interface{}) { Global().Error(args...) }
func Fatal(args ...interface{}) { Global().Fatal(args...) }

func Debugf(format string, args ...interface{}) { Global().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { Global().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { Global().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { Global().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { Global().Fatalf(format, args...) }
