package vo

import (
	"github.com/sirupsen/logrus"
)

// Resolution sentinels. An empty resolution falls back to DefaultResolution;
// ResolutionSameAsSource defers to a probe of the source media.
const (
	ResolutionSameAsSource = "same"
	DefaultResolution      = "640x360"
)

// EncodeHooks carries the optional lifecycle handlers invoked around one
// encode attempt. A nil slot means no handler. Each handler receives the
// target format and the original options of the request.
type EncodeHooks struct {
	BeforeTranscode func(format string, opts *EncodeOptions)
	AfterTranscode  func(format string, opts *EncodeOptions)
	OnError         func(format string, opts *EncodeOptions)
	Always          func(format string, opts *EncodeOptions)
}

// EncodeOptions is the declarative per-call configuration for one encode.
// All fields are optional; the zero value requests the format defaults.
// Options are read-only to the encoder for the duration of the call.
type EncodeOptions struct {
	// Resolution is an explicit "WIDTHxHEIGHT" string,
	// ResolutionSameAsSource, or empty for DefaultResolution.
	Resolution string

	// CustomFlags replaces the format's default flag template entirely when
	// non-empty. It is never merged with the defaults.
	CustomFlags string

	// Watermark composites a logo over the frame. Independent of
	// CustomFlags: the overlay clause is layered onto whichever flag string
	// was chosen.
	Watermark *Watermark

	// Hooks are invoked around the transcode attempt.
	Hooks EncodeHooks

	// Logger, when set, resolves the logger swapped into the process-wide
	// slot for the duration of the call.
	Logger func() *logrus.Logger
}

// HasCustomFlags reports whether the default flag template is overridden.
func (o *EncodeOptions) HasCustomFlags() bool {
	return o.CustomFlags != ""
}
