package multimap

import "heatgrid/internal/gradient"

// ColorWithThickness is a line color and its width in pixels.
type ColorWithThickness[P any] struct {
	Color     P
	Thickness int
}

// ColorbarSettings configures the value strip on the right edge.
type ColorbarSettings[P any] struct {
	Gradient  gradient.Gradient[P]
	Thickness int
	Lower     float32
	Upper     float32
	// LabelCount is the number of value labels; values below 2 use 5.
	LabelCount int
}

func (c *ColorbarSettings[P]) labels() int {
	if c.LabelCount < 2 {
		return DefaultLabelCount
	}
	return c.LabelCount
}

// DefaultLabelCount is the number of colorbar labels when none is set.
const DefaultLabelCount = 5

// Settings are the drawing parameters shared by every session.
type Settings[P any] struct {
	// BetweenData separates grid cells and the colorbar.
	BetweenData ColorWithThickness[P]
	// Colorbar is optional.
	Colorbar   *ColorbarSettings[P]
	Background P
	// Unselected outlines each data point once zoomed in far enough.
	Unselected ColorWithThickness[P]
	// Selected replaces the outline color of selected points.
	Selected P
	// BoundaryFactorMin: outlines are drawn only when a point spans more
	// than BoundaryFactorMin*Unselected.Thickness pixels.
	BoundaryFactorMin int
	// Sentinel fills the whole frame when rendering fails.
	Sentinel P
}
