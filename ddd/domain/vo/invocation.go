package vo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// AspectRatioWidth is the only preserve-aspect-ratio mode in use; it is
// format-independent by contract.
const AspectRatioWidth = "width"

// CodecOptions are structural options handed to the engine alongside the
// flag string.
type CodecOptions struct {
	PreserveAspectRatio string
}

// EngineInvocation is the exact set of parameters for one engine call.
type EngineInvocation struct {
	InputPath  string
	OutputPath string
	Flags      string
	Resolution string
	Codec      CodecOptions
}

// SourceProber reports the "WIDTHxHEIGHT" resolution of the media at path.
// It is consulted only when the options carry the same-as-source sentinel.
type SourceProber interface {
	Resolution(ctx context.Context, path string) (string, error)
}

// BuildInvocation turns a declarative configuration into the engine
// invocation for one encode of sourcePath into format. The temp output is a
// sibling of the source named tmpfile.<format>. The source is probed at
// most once, and only for the same-as-source resolution sentinel.
func BuildInvocation(ctx context.Context, sourcePath, format string, opts *EncodeOptions, prober SourceProber) (*EngineInvocation, error) {
	if opts == nil {
		opts = &EncodeOptions{}
	}

	prof, err := CodecProfileFor(format)
	if err != nil {
		return nil, err
	}

	flags := prof.DefaultFlags
	if opts.HasCustomFlags() {
		flags = opts.CustomFlags
	}
	if opts.Watermark != nil {
		if flags != "" && !strings.HasSuffix(flags, " ") {
			flags += " "
		}
		flags += fmt.Sprintf("-vf %q", opts.Watermark.OverlayClause())
	}

	resolution := opts.Resolution
	switch resolution {
	case "":
		resolution = DefaultResolution
	case ResolutionSameAsSource:
		resolution, err = prober.Resolution(ctx, sourcePath)
		if err != nil {
			return nil, fmt.Errorf("probe source resolution: %w", err)
		}
	}

	return &EngineInvocation{
		InputPath:  sourcePath,
		OutputPath: filepath.Join(filepath.Dir(sourcePath), "tmpfile."+format),
		Flags:      flags,
		Resolution: resolution,
		Codec:      CodecOptions{PreserveAspectRatio: AspectRatioWidth},
	}, nil
}
