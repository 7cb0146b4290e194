package fields

import "math"

// ScreenRectangle is a rectangle in screen space: top-left origin, pixels.
type ScreenRectangle struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScreenRect converts a PDF-space bounding box into a screen-space rectangle
// for a page rendered at the given scale with the given pixel height.
//
// PDF places the origin at the bottom-left of the page with y increasing
// upward; screens put it at the top-left with y increasing downward, so the
// top edge is measured from the canvas height down to the box's upper y.
//
// A malformed box (fewer than 4 finite components) yields the zero rectangle
// rather than an error: one bad annotation must not abort a whole render.
func ScreenRect(box []float64, scale, canvasHeight float64) ScreenRectangle {
	if len(box) < 4 {
		return ScreenRectangle{}
	}
	for _, v := range box[:4] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ScreenRectangle{}
		}
	}
	return ScreenRectangle{
		Left:   box[0] * scale,
		Top:    canvasHeight - box[3]*scale,
		Width:  (box[2] - box[0]) * scale,
		Height: (box[3] - box[1]) * scale,
	}
}

// RectToScreen is ScreenRect for a typed Rect.
func RectToScreen(r Rect, scale, canvasHeight float64) ScreenRectangle {
	return ScreenRect([]float64{r.X0, r.Y0, r.X1, r.Y1}, scale, canvasHeight)
}
