package vo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlayClauseCorners(t *testing.T) {
	tests := []struct {
		name     string
		position WatermarkPosition
		margin   int
		want     string
	}{
		{
			name:     "top left with default margin",
			position: PositionTopLeft,
			want:     "movie=logo.png [logo]; [in][logo] overlay=5:5 [out]",
		},
		{
			name:     "top right with default margin",
			position: PositionTopRight,
			want:     "movie=logo.png [logo]; [in][logo] overlay=frame_w-overlay_w-5:5 [out]",
		},
		{
			name:     "bottom left with default margin",
			position: PositionBottomLeft,
			want:     "movie=logo.png [logo]; [in][logo] overlay=5:frame_h-overlay_h-5 [out]",
		},
		{
			name:     "bottom right with default margin",
			position: PositionBottomRight,
			want:     "movie=logo.png [logo]; [in][logo] overlay=frame_w-overlay_w-5:frame_h-overlay_h-5 [out]",
		},
		{
			name:     "explicit margin overrides default",
			position: PositionBottomRight,
			margin:   20,
			want:     "movie=logo.png [logo]; [in][logo] overlay=frame_w-overlay_w-20:frame_h-overlay_h-20 [out]",
		},
		{
			name:     "top left with explicit margin",
			position: PositionTopLeft,
			margin:   10,
			want:     "movie=logo.png [logo]; [in][logo] overlay=10:10 [out]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Watermark{Path: "logo.png", Position: tt.position, PixelsFromEdge: tt.margin}
			assert.Equal(t, tt.want, w.OverlayClause())
		})
	}
}

func TestOverlayClauseWithoutPosition(t *testing.T) {
	w := &Watermark{Path: "logo.png"}
	assert.Equal(t, "movie=logo.png [logo]; [in][logo] overlay= [out]", w.OverlayClause())
}

func TestOverlayClauseUnknownPosition(t *testing.T) {
	w := &Watermark{Path: "logo.png", Position: "center"}
	assert.Equal(t, "movie=logo.png [logo]; [in][logo] overlay= [out]", w.OverlayClause())
}
