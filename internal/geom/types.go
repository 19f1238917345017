package geom

import "fmt"

// Point is a position in a dataset's own integer coordinate system.
// It is not a raster pixel.
type Point struct {
	X int
	Y int
}

// Offset is the difference of two points. It is signed when used as a
// delta and non-negative when used as an extent.
type Offset struct {
	DX int
	DY int
}

// Rect is a half-open rectangle in data coordinates: RightBottom lies one
// past the last covered point, like the length of an array.
type Rect struct {
	LeftTop     Point
	RightBottom Point
}

func (p Point) String() string { return fmt.Sprintf("%d|%d", p.X, p.Y) }

// Add moves p by o.
func (p Point) Add(o Offset) Point { return Point{X: p.X + o.DX, Y: p.Y + o.DY} }

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Offset { return Offset{DX: p.X - q.X, DY: p.Y - q.Y} }

// Less orders points by X, then Y.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}
