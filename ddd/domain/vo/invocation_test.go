package vo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	resolution string
	err        error
	calls      int
}

func (p *fakeProber) Resolution(ctx context.Context, path string) (string, error) {
	p.calls++
	return p.resolution, p.err
}

func TestBuildInvocationDefaults(t *testing.T) {
	prober := &fakeProber{}
	inv, err := BuildInvocation(context.Background(), "/videos/input.avi", "webm", nil, prober)
	require.NoError(t, err)

	assert.Equal(t, "/videos/input.avi", inv.InputPath)
	assert.Equal(t, "/videos/tmpfile.webm", inv.OutputPath)
	assert.Equal(t, "-b 1500k -ab 160000 -f webm -g 30 ", inv.Flags)
	assert.Equal(t, "640x360", inv.Resolution)
	assert.Equal(t, AspectRatioWidth, inv.Codec.PreserveAspectRatio)
	assert.Equal(t, 0, prober.calls, "default resolution must not probe")
}

func TestBuildInvocationSameAsSource(t *testing.T) {
	prober := &fakeProber{resolution: "1280x720"}
	opts := &EncodeOptions{Resolution: ResolutionSameAsSource}

	inv, err := BuildInvocation(context.Background(), "/videos/input.avi", "mp4", opts, prober)
	require.NoError(t, err)

	assert.Equal(t, "1280x720", inv.Resolution)
	assert.Equal(t, 1, prober.calls, "source is probed exactly once")
}

func TestBuildInvocationProbeFailure(t *testing.T) {
	prober := &fakeProber{err: errors.New("no video stream")}
	opts := &EncodeOptions{Resolution: ResolutionSameAsSource}

	_, err := BuildInvocation(context.Background(), "/videos/input.avi", "mp4", opts, prober)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe source resolution")
}

func TestBuildInvocationExplicitResolution(t *testing.T) {
	prober := &fakeProber{}
	opts := &EncodeOptions{Resolution: "1920x1080"}

	inv, err := BuildInvocation(context.Background(), "/videos/input.avi", "webm", opts, prober)
	require.NoError(t, err)

	assert.Equal(t, "1920x1080", inv.Resolution)
	assert.Equal(t, 0, prober.calls)
}

func TestBuildInvocationCustomFlagsReplaceDefaults(t *testing.T) {
	opts := &EncodeOptions{CustomFlags: "-vcodec libvpx -acodec libvorbis"}

	inv, err := BuildInvocation(context.Background(), "/videos/input.avi", "webm", opts, &fakeProber{})
	require.NoError(t, err)

	assert.Equal(t, "-vcodec libvpx -acodec libvorbis", inv.Flags)
	assert.NotContains(t, inv.Flags, "-g 30")
}

func TestBuildInvocationWatermarkOnDefaults(t *testing.T) {
	opts := &EncodeOptions{
		Watermark: &Watermark{Path: "logo.png", Position: PositionBottomRight},
	}

	inv, err := BuildInvocation(context.Background(), "/videos/input.avi", "webm", opts, &fakeProber{})
	require.NoError(t, err)

	want := `-b 1500k -ab 160000 -f webm -g 30 -vf "movie=logo.png [logo]; [in][logo] overlay=frame_w-overlay_w-5:frame_h-overlay_h-5 [out]"`
	assert.Equal(t, want, inv.Flags)
}

func TestBuildInvocationWatermarkOnCustomFlags(t *testing.T) {
	opts := &EncodeOptions{
		CustomFlags: "-vcodec libx264",
		Watermark:   &Watermark{Path: "logo.png", Position: PositionTopLeft},
	}

	inv, err := BuildInvocation(context.Background(), "/videos/input.avi", "mp4", opts, &fakeProber{})
	require.NoError(t, err)

	want := `-vcodec libx264 -vf "movie=logo.png [logo]; [in][logo] overlay=5:5 [out]"`
	assert.Equal(t, want, inv.Flags)
}

func TestBuildInvocationUnsupportedFormat(t *testing.T) {
	_, err := BuildInvocation(context.Background(), "/videos/input.avi", "avi", nil, &fakeProber{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestCodecProfileFor(t *testing.T) {
	prof, err := CodecProfileFor("webm")
	require.NoError(t, err)
	assert.Equal(t, "libvpx", prof.VideoCodec)
	assert.Equal(t, "libvorbis", prof.AudioCodec)

	prof, err = CodecProfileFor("mp4")
	require.NoError(t, err)
	assert.Equal(t, "libx264", prof.VideoCodec)
	assert.Equal(t, "aac", prof.AudioCodec)

	_, err = CodecProfileFor("mkv")
	assert.Error(t, err)
}

func TestSupportedFormat(t *testing.T) {
	assert.True(t, SupportedFormat("webm"))
	assert.True(t, SupportedFormat("mp4"))
	assert.False(t, SupportedFormat("ogv"))
	assert.False(t, SupportedFormat(""))
}
