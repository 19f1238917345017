package multimap

import "heatgrid/internal/geom"

// axis maps pixel offsets inside a cell to data coordinates along one
// dimension. When a data point spans at least one pixel (perPoint > 0)
// each point gets a block of perPoint pixels and the remainder is split
// into margins; otherwise pixels are mapped by proportional division.
type axis struct {
	start    int // first shown coordinate
	extent   int // shown coordinates
	cell     int // cell size in pixels
	perPoint int
	margin   int
	border   int // outline thickness inside each block, 0 for none
}

func newAxis(start, extent, cell int) axis {
	a := axis{start: start, extent: extent, cell: cell}
	if extent > 0 {
		a.perPoint = cell / extent
	}
	if a.perPoint > 0 {
		a.margin = (cell%a.perPoint + 1) / 2
	}
	return a
}

func (a axis) magnified() bool { return a.perPoint > 0 }

// project returns the coordinate under pixel pos. ok is false on margins,
// which never show data; edge marks pixels on a block outline.
func (a axis) project(pos int) (coord int, ok, edge bool) {
	if !a.magnified() {
		if a.cell <= 0 {
			return 0, false, false
		}
		return a.start + pos*a.extent/a.cell, true, false
	}
	if pos < a.margin {
		return 0, false, false
	}
	pos -= a.margin
	i := pos / a.perPoint
	if i >= a.extent {
		return 0, false, false
	}
	rem := pos % a.perPoint
	edge = a.border > 0 && (rem < a.border || rem+a.border >= a.perPoint)
	return a.start + i, true, edge
}

// blockStart is the pixel offset of the block holding the i-th shown point.
func (a axis) blockStart(i int) int { return a.margin + i*a.perPoint }

// Regime names how data density compares to pixel density in a cell.
type Regime int

const (
	// SubSample: several data points per pixel on both axes.
	SubSample Regime = iota
	// MagnifiedX: blocks along x, proportional along y.
	MagnifiedX
	// MagnifiedY: blocks along y, proportional along x.
	MagnifiedY
	// SuperSample: every point covers a block of pixels.
	SuperSample
)

func (r Regime) String() string {
	return [...]string{"sub-sample", "magnified-x", "magnified-y", "super-sample"}[r]
}

// cellMap combines the two axes of one cell.
type cellMap struct {
	x, y axis
}

func newCellMap(shown geom.Rect, cellW, cellH, thickness, factorMin int) cellMap {
	size := shown.Size()
	m := cellMap{
		x: newAxis(shown.LeftTop.X, size.DX, cellW),
		y: newAxis(shown.LeftTop.Y, size.DY, cellH),
	}
	limit := factorMin * thickness
	okX := m.x.magnified() && m.x.perPoint > limit
	okY := m.y.magnified() && m.y.perPoint > limit
	if m.x.magnified() && m.y.magnified() {
		// Outlines on one axis only would look like stripes.
		both := okX && okY
		okX, okY = both, both
	}
	if okX {
		m.x.border = thickness
	}
	if okY {
		m.y.border = thickness
	}
	return m
}

func (m cellMap) regime() Regime {
	switch {
	case m.x.magnified() && m.y.magnified():
		return SuperSample
	case m.x.magnified():
		return MagnifiedX
	case m.y.magnified():
		return MagnifiedY
	}
	return SubSample
}

// project maps a pixel inside the cell to a coordinate.
func (m cellMap) project(col, row int) (p geom.Point, ok, edge bool) {
	x, okX, edgeX := m.x.project(col)
	y, okY, edgeY := m.y.project(row)
	return geom.Point{X: x, Y: y}, okX && okY, edgeX || edgeY
}
