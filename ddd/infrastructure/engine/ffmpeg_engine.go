package engine

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"encode-service/ddd/domain/vo"
	"encode-service/pkg/logger"
)

// FFmpegEngine runs conversions through the ffmpeg binary and probes media
// through ffprobe.
type FFmpegEngine struct {
	BinaryPath string
	ProbePath  string
	Timeout    time.Duration
}

// NewFFmpegEngine builds an engine; empty paths fall back to the binaries on
// PATH.
func NewFFmpegEngine(binaryPath, probePath string, timeout time.Duration) *FFmpegEngine {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	if probePath == "" {
		probePath = "ffprobe"
	}
	return &FFmpegEngine{BinaryPath: binaryPath, ProbePath: probePath, Timeout: timeout}
}

// Resolution reports the "WIDTHxHEIGHT" of the first video stream at path.
func (e *FFmpegEngine) Resolution(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, e.ProbePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("ffprobe %s: %w", path, err)
	}
	res := strings.TrimSpace(string(out))
	if res == "" {
		return "", fmt.Errorf("ffprobe %s: no video stream", path)
	}
	return res, nil
}

// Transcode runs one ffmpeg invocation built from inv. The flag string is
// split shell-style so quoted filter graphs survive as single arguments.
func (e *FFmpegEngine) Transcode(ctx context.Context, inv *vo.EngineInvocation) error {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := make([]string, 0, 16)
	args = append(args, "-i", inv.InputPath)
	args = append(args, SplitFlags(inv.Flags)...)
	if inv.Resolution != "" {
		args = append(args, "-s", e.scaledResolution(ctx, inv))
	}
	args = append(args, "-y", inv.OutputPath)

	logger.Infof("ffmpeg command input=%s args=%s", inv.InputPath, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.BinaryPath, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	tail := collectTail(stderr, 50)
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if len(tail) > 0 {
			logger.Errorf("ffmpeg failed input=%s tail_stderr=%s", inv.InputPath, strings.Join(tail, "\n"))
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// scaledResolution honors the preserve-aspect-ratio=width contract: the
// requested width is kept and the height re-derived from the source's
// aspect ratio, rounded to an even value. Any probe trouble falls back to
// the requested resolution unchanged.
func (e *FFmpegEngine) scaledResolution(ctx context.Context, inv *vo.EngineInvocation) string {
	if inv.Codec.PreserveAspectRatio != vo.AspectRatioWidth {
		return inv.Resolution
	}

	reqW, _, ok := parseResolution(inv.Resolution)
	if !ok {
		return inv.Resolution
	}
	src, err := e.Resolution(ctx, inv.InputPath)
	if err != nil {
		return inv.Resolution
	}
	srcW, srcH, ok := parseResolution(src)
	if !ok || srcW == 0 || srcH == 0 {
		return inv.Resolution
	}

	h := int(math.Round(float64(reqW) * float64(srcH) / float64(srcW)))
	if h%2 != 0 {
		h++
	}
	return fmt.Sprintf("%dx%d", reqW, h)
}

func parseResolution(s string) (w, h int, ok bool) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return 0, 0, false
	}
	return w, h, true
}

// collectTail drains r keeping at most n trailing lines.
func collectTail(r interface{ Read([]byte) (int, error) }, n int) []string {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	tail := make([]string, 0, n)
	for scanner.Scan() {
		if len(tail) >= n {
			tail = tail[1:]
		}
		tail = append(tail, scanner.Text())
	}
	return tail
}

// SplitFlags splits a flag string into arguments, honoring double quotes so
// a filter graph like -vf "movie=logo.png [logo]; ..." stays one argument.
func SplitFlags(flags string) []string {
	args := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes := false
	flushed := true

	for _, r := range flags {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			flushed = false
		case r == ' ' && !inQuotes:
			if !flushed || cur.Len() > 0 {
				args = append(args, cur.String())
				cur.Reset()
				flushed = true
			}
		default:
			cur.WriteRune(r)
			flushed = false
		}
	}
	if !flushed || cur.Len() > 0 {
		args = append(args, cur.String())
	}
	return args
}
