package multimap

import "heatgrid/internal/geom"

// minExtent is the smallest window, per axis, that zooming and drag
// selection may produce.
const minExtent = 4

// Direction is a unit keyboard pan.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) offset() geom.Offset {
	switch d {
	case Up:
		return geom.Offset{DY: -1}
	case Down:
		return geom.Offset{DY: 1}
	case Left:
		return geom.Offset{DX: -1}
	case Right:
		return geom.Offset{DX: 1}
	}
	return geom.Offset{}
}

// Zoom shrinks r by delta on every side (grows it for negative delta).
// Each axis is only shrunk while its extent stays above 3+2*delta, so a
// window of at least four points never collapses further.
func Zoom(r *geom.Rect, delta int) {
	if delta < 0 || r.RightBottom.X-r.LeftTop.X > minExtent-1+2*delta {
		r.LeftTop.X += delta
		r.RightBottom.X -= delta
	}
	if delta < 0 || r.RightBottom.Y-r.LeftTop.Y > minExtent-1+2*delta {
		r.LeftTop.Y += delta
		r.RightBottom.Y -= delta
	}
}

// Translate moves r by o. Panning past the data is allowed.
func Translate(r *geom.Rect, o geom.Offset) { *r = r.Translate(o) }

// Pan moves r one point in direction d.
func Pan(r *geom.Rect, d Direction) { Translate(r, d.offset()) }

// CenterTo keeps the extent of r and moves it so p is in the middle; odd
// extents put the extra point to the left and top.
func CenterTo(r *geom.Rect, p geom.Point) {
	size := r.Size()
	r.LeftTop = geom.Point{X: p.X - (size.DX - size.DX/2), Y: p.Y - (size.DY - size.DY/2)}
	r.RightBottom = geom.Point{X: p.X + size.DX/2, Y: p.Y + size.DY/2}
}

// Drag is an ongoing box selection in data coordinates. The zero value
// and nil both mean no drag.
type Drag struct {
	LeftTop     geom.Point // inclusive
	RightBottom geom.Point // inclusive
	anchor      geom.Point
	active      bool
}

// Start begins a drag at p.
func (d *Drag) Start(p geom.Point) {
	*d = Drag{LeftTop: p, RightBottom: p, anchor: p, active: true}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d != nil && d.active }

// Update stretches the box from the anchor to p and reports whether it
// changed.
func (d *Drag) Update(p geom.Point) bool {
	if !d.Active() {
		return false
	}
	lt, rb := geom.Span(d.anchor, p)
	changed := lt != d.LeftTop || rb != d.RightBottom
	d.LeftTop, d.RightBottom = lt, rb
	return changed
}

// Release ends the drag. With p set, the box from the anchor to p becomes
// the shown rectangle when it spans more than four points on both axes.
// The drag is cleared either way; Release reports whether r changed.
func (d *Drag) Release(p *geom.Point, r *geom.Rect) bool {
	if !d.Active() {
		return false
	}
	anchor := d.anchor
	*d = Drag{}
	if p == nil {
		return false
	}
	lt, rb := geom.Span(anchor, *p)
	rb = rb.Add(geom.Offset{DX: 1, DY: 1})
	if rb.X-lt.X <= minExtent || rb.Y-lt.Y <= minExtent {
		return false
	}
	next := geom.Rect{LeftTop: lt, RightBottom: rb}
	changed := next != *r
	*r = next
	return changed
}

// Covers reports whether p lies in the dragged box.
func (d *Drag) Covers(p geom.Point) bool {
	return d.Active() &&
		d.LeftTop.X <= p.X && p.X <= d.RightBottom.X &&
		d.LeftTop.Y <= p.Y && p.Y <= d.RightBottom.Y
}
