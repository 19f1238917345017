package geom

import (
	"fmt"
	"sort"
)

// RectAt returns the rectangle starting at lt with the given extent.
func RectAt(lt Point, size Offset) Rect {
	return Rect{LeftTop: lt, RightBottom: lt.Add(size)}
}

// Size returns the extent of r.
func (r Rect) Size() Offset { return r.RightBottom.Sub(r.LeftTop) }

// Empty reports whether r covers no point.
func (r Rect) Empty() bool {
	return r.RightBottom.X <= r.LeftTop.X || r.RightBottom.Y <= r.LeftTop.Y
}

// Contains reports whether p lies inside the half-open rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.LeftTop.X && p.Y >= r.LeftTop.Y &&
		p.X < r.RightBottom.X && p.Y < r.RightBottom.Y
}

// Translate moves both corners by o.
func (r Rect) Translate(o Offset) Rect {
	return Rect{LeftTop: r.LeftTop.Add(o), RightBottom: r.RightBottom.Add(o)}
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		LeftTop:     Point{X: min(r.LeftTop.X, o.LeftTop.X), Y: min(r.LeftTop.Y, o.LeftTop.Y)},
		RightBottom: Point{X: max(r.RightBottom.X, o.RightBottom.X), Y: max(r.RightBottom.Y, o.RightBottom.Y)},
	}
}

// Last returns the bottom-right point that is still inside r.
func (r Rect) Last() Point { return Point{X: r.RightBottom.X - 1, Y: r.RightBottom.Y - 1} }

func (r Rect) String() string {
	return fmt.Sprintf("[%s .. %s]", r.LeftTop, r.Last())
}

// Bounds unions all rectangles. Without input it returns the unit
// rectangle at the origin so callers always get a non-empty window.
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{RightBottom: Point{X: 1, Y: 1}}
	}
	out := rects[0]
	for _, r := range rects[1:] {
		out = out.Union(r)
	}
	return out
}

// Span returns the inclusive box spanned by two corner points.
func Span(a, b Point) (lt, rb Point) {
	return Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)}, Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
}

// SortPoints orders points in place, X first.
func SortPoints(pts []Point) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].Less(pts[j]) })
}
