package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"encode-service/ddd/domain/gateway"
	"encode-service/pkg/logger"
)

// TheoraFactory builds ffmpeg2theora transcoders for the alternate
// container path.
type TheoraFactory struct {
	BinaryPath string
	Timeout    time.Duration
}

// NewTheoraFactory builds a factory; an empty path falls back to the binary
// on PATH.
func NewTheoraFactory(binaryPath string, timeout time.Duration) *TheoraFactory {
	if binaryPath == "" {
		binaryPath = "ffmpeg2theora"
	}
	return &TheoraFactory{BinaryPath: binaryPath, Timeout: timeout}
}

// New binds a transcoder to one input/output pair.
func (f *TheoraFactory) New(inputPath, outputPath string) gateway.AlternateTranscoder {
	return &theoraTranscoder{
		binaryPath: f.BinaryPath,
		timeout:    f.Timeout,
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

type theoraTranscoder struct {
	binaryPath string
	timeout    time.Duration
	inputPath  string
	outputPath string
}

// Run converts the input into the theora/ogv container. When log is nil the
// process logger is used instead.
func (t *theoraTranscoder) Run(ctx context.Context, log *logrus.Logger) error {
	if log == nil {
		log = logger.Global()
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, t.binaryPath, "-o", t.outputPath, t.inputPath)
	log.Infof("ffmpeg2theora command args=%s", strings.Join(cmd.Args, " "))

	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Errorf("ffmpeg2theora failed input=%s output=%s", t.inputPath, t.outputPath)
		return fmt.Errorf("ffmpeg2theora: %w: %s", err, tailOf(string(out), 400))
	}
	return nil
}

// tailOf returns at most n trailing bytes of s for error context.
func tailOf(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
