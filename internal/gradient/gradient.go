// Package gradient builds color gradients in the Oklab color space and maps
// between gradient stops and numeric values.
package gradient

import "math"

// Gradient is an ordered list of color stops.
type Gradient[P any] []P

// Lookup returns the stop for ratio in [0, 1]; out-of-range ratios clamp to
// the first or last stop. An empty gradient yields the zero pixel.
func (g Gradient[P]) Lookup(ratio float32) P {
	var zero P
	if len(g) == 0 {
		return zero
	}
	idx := ratio * float32(len(g))
	switch {
	case !(idx >= 0): // negative or NaN
		return g[0]
	case idx >= float32(len(g)):
		return g[len(g)-1]
	}
	return g[int(idx)]
}

// ElementAt returns the stop covering row out of height equal bands.
func (g Gradient[P]) ElementAt(row, height int) P {
	var zero P
	if len(g) == 0 || height <= 0 {
		return zero
	}
	i := row * len(g) / height
	return g[min(max(i, 0), len(g)-1)]
}

// FetchValue inverts the band bucketing used to draw a colorbar: it maps a
// relative position in [0, 1] back to a value between lower and upper,
// snapped to the stop the position falls into. It returns NaN for an
// empty gradient and the midpoint for a single stop.
func (g Gradient[P]) FetchValue(lower, upper, relative float32) float32 {
	n := len(g)
	switch n {
	case 0:
		return float32(math.NaN())
	case 1:
		return (lower + upper) / 2
	}
	relative = min(max(relative, 0), 1)
	delta := (upper - lower) / float32(n-1)
	v := float32(math.Floor(float64(relative*float32(n))))*delta + lower
	return min(v, upper)
}
