package vo

import "fmt"

// CodecProfile is the static per-format record of default codecs and the
// default flag template. Every supported format has exactly one profile.
//
// DefaultFlags embeds the profile's bitrate, container and GOP defaults as a
// literal flag string. The trailing space is part of the template.
type CodecProfile struct {
	VideoCodec   string
	AudioCodec   string
	DefaultFlags string
}

var codecProfiles = map[string]CodecProfile{
	"webm": {
		VideoCodec:   "libvpx",
		AudioCodec:   "libvorbis",
		DefaultFlags: "-b 1500k -ab 160000 -f webm -g 30 ",
	},
	"mp4": {
		VideoCodec:   "libx264",
		AudioCodec:   "aac",
		DefaultFlags: "-b 1500k -ab 160000 -f mp4 -g 30 ",
	},
}

// CodecProfileFor returns the profile for a target format.
func CodecProfileFor(format string) (CodecProfile, error) {
	prof, ok := codecProfiles[format]
	if !ok {
		return CodecProfile{}, fmt.Errorf("unsupported format: %s", format)
	}
	return prof, nil
}

// SupportedFormat reports whether a format has a codec profile.
func SupportedFormat(format string) bool {
	_, ok := codecProfiles[format]
	return ok
}
