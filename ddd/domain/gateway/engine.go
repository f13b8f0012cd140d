package gateway

import (
	"context"

	"github.com/sirupsen/logrus"

	"encode-service/ddd/domain/vo"
)

// Engine is the external transcoding engine bound to a source file. It owns
// subprocess invocation and media probing; the domain layer only decides
// what to ask of it.
type Engine interface {
	vo.SourceProber

	// Transcode runs one conversion. Any failure is surfaced as an error;
	// the engine never retries on its own.
	Transcode(ctx context.Context, inv *vo.EngineInvocation) error
}

// AlternateTranscoder converts into the fixed alternate container. The
// logger argument is passed directly rather than via the global slot and
// may be nil.
type AlternateTranscoder interface {
	Run(ctx context.Context, log *logrus.Logger) error
}

// AlternateTranscoderFactory constructs a transcoder for one input/output
// pair.
type AlternateTranscoderFactory interface {
	New(inputPath, outputPath string) AlternateTranscoder
}

// Filesystem exposes the atomic rename used for the temp-to-final handoff.
type Filesystem interface {
	Rename(oldPath, newPath string) error
}
