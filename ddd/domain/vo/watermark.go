package vo

import "fmt"

// WatermarkPosition names the frame corner a watermark is anchored to.
type WatermarkPosition string

const (
	PositionTopLeft     WatermarkPosition = "top-left"
	PositionTopRight    WatermarkPosition = "top-right"
	PositionBottomLeft  WatermarkPosition = "bottom-left"
	PositionBottomRight WatermarkPosition = "bottom-right"
)

// defaultPixelsFromEdge is applied when a position is given but no margin.
const defaultPixelsFromEdge = 5

// Watermark describes a logo overlay. Path is required when a watermark is
// present; that contract is the caller's to honor and is not re-checked
// here. A zero Position yields an overlay clause with no coordinate
// expression at all, not a default corner.
type Watermark struct {
	Path           string
	Position       WatermarkPosition
	PixelsFromEdge int // zero means the default of 5 when a position is set
}

// OverlayClause renders the filter-graph fragment compositing the watermark
// onto the frame, e.g.
//
//	movie=logo.png [logo]; [in][logo] overlay=5:frame_h-overlay_h-5 [out]
func (w *Watermark) OverlayClause() string {
	return fmt.Sprintf("movie=%s [logo]; [in][logo] overlay=%s [out]", w.Path, w.coordinates())
}

// coordinates resolves the overlay "X:Y" expression. The symbolic names
// frame_w/frame_h refer to the video frame and overlay_w/overlay_h to the
// watermark image; both are substituted by the engine at run time.
func (w *Watermark) coordinates() string {
	if w.Position == "" {
		return ""
	}

	margin := w.PixelsFromEdge
	if margin == 0 {
		margin = defaultPixelsFromEdge
	}

	near := fmt.Sprintf("%d", margin)
	farX := fmt.Sprintf("frame_w-overlay_w-%d", margin)
	farY := fmt.Sprintf("frame_h-overlay_h-%d", margin)

	switch w.Position {
	case PositionTopLeft:
		return near + ":" + near
	case PositionTopRight:
		return farX + ":" + near
	case PositionBottomLeft:
		return near + ":" + farY
	case PositionBottomRight:
		return farX + ":" + farY
	default:
		return ""
	}
}
