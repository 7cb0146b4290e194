package fields

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenRect(t *testing.T) {
	tests := []struct {
		name         string
		box          []float64
		scale        float64
		canvasHeight float64
		expected     ScreenRectangle
	}{
		{
			name:         "unit_scale_flips_origin",
			box:          []float64{0, 0, 100, 50},
			scale:        1,
			canvasHeight: 200,
			expected:     ScreenRectangle{Left: 0, Top: 150, Width: 100, Height: 50},
		},
		{
			name:         "offset_box",
			box:          []float64{10, 20, 110, 70},
			scale:        1,
			canvasHeight: 200,
			expected:     ScreenRectangle{Left: 10, Top: 130, Width: 100, Height: 50},
		},
		{
			name:         "double_scale",
			box:          []float64{10, 20, 110, 70},
			scale:        2,
			canvasHeight: 400,
			expected:     ScreenRectangle{Left: 20, Top: 260, Width: 200, Height: 100},
		},
		{
			name:         "missing_box_yields_zero_rect",
			box:          nil,
			scale:        1,
			canvasHeight: 200,
			expected:     ScreenRectangle{},
		},
		{
			name:         "short_box_yields_zero_rect",
			box:          []float64{1, 2, 3},
			scale:        1,
			canvasHeight: 200,
			expected:     ScreenRectangle{},
		},
		{
			name:         "nan_component_yields_zero_rect",
			box:          []float64{0, math.NaN(), 10, 10},
			scale:        1,
			canvasHeight: 200,
			expected:     ScreenRectangle{},
		},
		{
			name:         "inf_component_yields_zero_rect",
			box:          []float64{0, 0, math.Inf(1), 10},
			scale:        1,
			canvasHeight: 200,
			expected:     ScreenRectangle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenRect(tt.box, tt.scale, tt.canvasHeight)
			assert.Equal(t, tt.expected, got)
			assert.False(t, math.IsNaN(got.Top))
		})
	}
}

func TestRectToScreen(t *testing.T) {
	r := Rect{X0: 0, Y0: 0, X1: 100, Y1: 50}
	got := RectToScreen(r, 1, 200)
	assert.Equal(t, ScreenRectangle{Left: 0, Top: 150, Width: 100, Height: 50}, got)
}
