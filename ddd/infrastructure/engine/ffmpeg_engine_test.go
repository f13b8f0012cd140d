package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags string
		want  []string
	}{
		{
			name:  "empty string",
			flags: "",
			want:  []string{},
		},
		{
			name:  "plain flags",
			flags: "-b 1500k -ab 160000 -f webm -g 30",
			want:  []string{"-b", "1500k", "-ab", "160000", "-f", "webm", "-g", "30"},
		},
		{
			name:  "trailing space is ignored",
			flags: "-b 1500k ",
			want:  []string{"-b", "1500k"},
		},
		{
			name:  "quoted filter graph stays one argument",
			flags: `-g 30 -vf "movie=logo.png [logo]; [in][logo] overlay=5:5 [out]"`,
			want:  []string{"-g", "30", "-vf", "movie=logo.png [logo]; [in][logo] overlay=5:5 [out]"},
		},
		{
			name:  "multiple spaces collapse",
			flags: "-b  1500k",
			want:  []string{"-b", "1500k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitFlags(tt.flags))
		})
	}
}

func TestParseResolution(t *testing.T) {
	w, h, ok := parseResolution("1280x720")
	assert.True(t, ok)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	_, _, ok = parseResolution("1280")
	assert.False(t, ok)

	_, _, ok = parseResolution("widexhigh")
	assert.False(t, ok)
}
