package multimap

import (
	"math"

	"heatgrid/internal/geom"
	"heatgrid/internal/gradient"
	"heatgrid/internal/raster"
)

// Heatmap is numeric data, row by row. Non-finite values mark points
// without data.
type Heatmap struct {
	Width  int
	Height int
	Values []float32
}

// At returns the value at (x, y) relative to the first point.
func (h *Heatmap) At(x, y int) (float32, bool) {
	if x < 0 || y < 0 || x >= h.Width || y >= h.Height {
		return 0, false
	}
	return h.Values[y*h.Width+x], true
}

// Limits returns the smallest and largest finite value. ok is false when
// there is none.
func (h *Heatmap) Limits() (lower, upper float32, ok bool) {
	lower, upper = float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range h.Values {
		if !finite(v) {
			continue
		}
		lower, upper, ok = min(lower, v), max(upper, v), true
	}
	return lower, upper, ok
}

// Colors maps every value into g after clamping it to [lower, upper].
// Non-finite values become background.
func (h *Heatmap) Colors(lower, upper float32, g gradient.Gradient[raster.RGBA], background raster.RGBA) []raster.RGBA {
	out := make([]raster.RGBA, len(h.Values))
	delta := upper - lower
	for i, v := range h.Values {
		if !finite(v) {
			out[i] = background
			continue
		}
		v = min(max(v, lower), upper)
		ratio := float32(0)
		if delta > 0 {
			ratio = (v - lower) / delta
		}
		out[i] = g.Lookup(ratio)
	}
	return out
}

// Dataset colors h and anchors it at anchor.
func (h *Heatmap) Dataset(lower, upper float32, g gradient.Gradient[raster.RGBA], background raster.RGBA, anchor geom.Point, overlay Overlay) *Dataset[raster.RGBA] {
	return &Dataset[raster.RGBA]{
		Width:   h.Width,
		Height:  h.Height,
		Pixels:  h.Colors(lower, upper, g, background),
		Anchor:  anchor,
		Overlay: overlay,
	}
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ExampleCircle is a radial ramp: 1 in the middle, 0 at the edges.
func ExampleCircle(width, height int) *Heatmap {
	h := &Heatmap{Width: width, Height: height, Values: make([]float32, 0, width*height)}
	cx, cy := width/2, height/2
	maxDist := float64(max(width/2, height/2, 1))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := math.Hypot(float64(cx-x), float64(cy-y)) / maxDist
			h.Values = append(h.Values, float32(min(max(1-d, 0), 1)))
		}
	}
	return h
}
