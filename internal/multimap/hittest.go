package multimap

import (
	"fmt"
	"image"

	"heatgrid/internal/geom"
)

// PositionKind classifies a raster pixel.
type PositionKind int

const (
	// NotHovering: outside every cell and outside the colorbar.
	NotHovering PositionKind = iota
	// NoData: inside a cell, but the dataset has no value at Point.
	NoData
	// Pixel: inside a cell on a data point.
	Pixel
	// Colorbar: on the colorbar; Value holds the value under the pointer.
	Colorbar
)

// Position is the logical meaning of a raster pixel.
type Position[K comparable] struct {
	Kind  PositionKind
	Key   K
	Point geom.Point
	Value float32
}

func (p Position[K]) String() string {
	switch p.Kind {
	case NoData:
		return fmt.Sprintf("no data at %s", p.Point)
	case Pixel:
		return fmt.Sprintf("%v at %s", p.Key, p.Point)
	case Colorbar:
		return FormatScientific(p.Value, 4)
	}
	return "not hovering"
}

// Coordinate returns the data point for Pixel and NoData positions.
func (p Position[K]) Coordinate() (geom.Point, bool) {
	return p.Point, p.Kind == Pixel || p.Kind == NoData
}

// PixelToLogical maps a raster pixel of a width x height frame back to the
// dataset and data point drawn there. It uses the same geometry as Render;
// it does not modify st.
func (e *Engine[K, P]) PixelToLogical(pt image.Point, width, height int, st *State[K]) Position[K] {
	var none Position[K]
	if pt.X < 0 || pt.Y < 0 || pt.X >= width || pt.Y >= height {
		return none
	}
	items := visibleItems(e.Items, st)
	shown, ok := st.ShownRect()
	if !ok {
		shown = homeRect(e.Items, st)
	}
	g, err := e.layoutFor(width, height, len(items), shown)
	if err != nil {
		return none
	}
	if idx, cx, cy, ok := g.locate(pt.X, pt.Y); ok {
		p, hit, _ := e.cellMap(g).project(cx, cy)
		if !hit {
			return none
		}
		it := items[idx]
		if _, has := it.Data.Lookup(p); has {
			return Position[K]{Kind: Pixel, Key: it.Key, Point: p}
		}
		return Position[K]{Kind: NoData, Key: it.Key, Point: p}
	}
	if cb := e.Settings.Colorbar; cb != nil && pt.X >= width-cb.Thickness {
		rel := float32(pt.Y) / float32(height)
		return Position[K]{Kind: Colorbar, Value: cb.Gradient.FetchValue(cb.Lower, cb.Upper, 1-rel)}
	}
	return none
}
