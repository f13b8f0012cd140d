package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"encode-service/ddd/domain/gateway"
	"encode-service/ddd/domain/vo"
	"encode-service/pkg/logger"
)

// AlternateContainerExt is the fixed container of the alternate encode path.
const AlternateContainerExt = "ogv"

// ProcessingError is the single uniform error surfaced by Encode. It wraps
// the underlying engine or filesystem failure.
type ProcessingError struct {
	Format string
	Err    error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing %s failed: %v", e.Format, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// Encoder transcodes one source file. The engine, alternate transcoder
// factory and filesystem are external collaborators; the encoder sequences
// hooks, the logger swap and the temp-to-final handoff around them.
//
// An encoder holds no cross-call state, but Encode touches the process-wide
// logger slot when the options carry a logger. Concurrent encodes that both
// swap the slot must be serialized by the caller.
type Encoder struct {
	Source string
	Engine gateway.Engine
	Alt    gateway.AlternateTranscoderFactory
	FS     gateway.Filesystem
}

// Encode converts the source file into format and replaces it in place,
// returning the final path. The attempt is bracketed by the options' hooks:
// BeforeTranscode always precedes the attempt, exactly one of
// AfterTranscode/OnError follows it, and Always runs exactly once after
// whichever of the two ran. Any failure is surfaced as a ProcessingError
// after the hooks have run and the logger slot has been restored.
func (e *Encoder) Encode(ctx context.Context, format string, opts *vo.EncodeOptions) (string, error) {
	if opts == nil {
		opts = &vo.EncodeOptions{}
	}

	var active *logrus.Logger
	if opts.Logger != nil {
		active = opts.Logger()
		restore := logger.Swap(active)
		defer restore()
	}

	if err := e.attempt(ctx, format, opts); err != nil {
		if active != nil {
			logFailure(active, err)
		}
		return "", &ProcessingError{Format: format, Err: err}
	}
	return e.Source, nil
}

// attempt runs the hook-bracketed transcode. The Always hook is deferred so
// it fires exactly once on both branches, after AfterTranscode or OnError.
func (e *Encoder) attempt(ctx context.Context, format string, opts *vo.EncodeOptions) error {
	if h := opts.Hooks.BeforeTranscode; h != nil {
		h(format, opts)
	}
	if h := opts.Hooks.Always; h != nil {
		defer h(format, opts)
	}

	if err := e.transcodeAndReplace(ctx, format, opts); err != nil {
		if h := opts.Hooks.OnError; h != nil {
			h(format, opts)
		}
		return err
	}

	if h := opts.Hooks.AfterTranscode; h != nil {
		h(format, opts)
	}
	return nil
}

// transcodeAndReplace performs the engine call and the atomic handoff of
// the temp output onto the source path.
func (e *Encoder) transcodeAndReplace(ctx context.Context, format string, opts *vo.EncodeOptions) error {
	inv, err := vo.BuildInvocation(ctx, e.Source, format, opts, e.Engine)
	if err != nil {
		return err
	}
	if err := e.Engine.Transcode(ctx, inv); err != nil {
		return fmt.Errorf("engine transcode: %w", err)
	}
	if err := e.FS.Rename(inv.OutputPath, e.Source); err != nil {
		return fmt.Errorf("rename %s to %s: %w", inv.OutputPath, e.Source, err)
	}
	return nil
}

// EncodeAlternate converts the source into the fixed alternate container via
// the dedicated transcoder and replaces it in place. A configured logger is
// handed to the transcoder directly instead of through the global slot.
// Failures propagate as the collaborator raised them, without ProcessingError
// translation.
func (e *Encoder) EncodeAlternate(ctx context.Context, opts *vo.EncodeOptions) (string, error) {
	if opts == nil {
		opts = &vo.EncodeOptions{}
	}

	var log *logrus.Logger
	if opts.Logger != nil {
		log = opts.Logger()
	}

	outputPath := filepath.Join(filepath.Dir(e.Source), "tmpfile."+AlternateContainerExt)
	tr := e.Alt.New(e.Source, outputPath)
	if err := tr.Run(ctx, log); err != nil {
		return "", err
	}
	if err := e.FS.Rename(outputPath, e.Source); err != nil {
		return "", err
	}
	return e.Source, nil
}

// logFailure emits the failure at error severity: one entry with the
// failure's type and message, then one entry per wrapped cause.
func logFailure(log *logrus.Logger, err error) {
	log.Errorf("encode failed: %T: %v", err, err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		log.Errorf("caused by: %T: %v", cause, cause)
	}
}
