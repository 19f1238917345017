package multimap

import (
	"image"

	"heatgrid/internal/geom"
	"heatgrid/internal/raster"
)

// SinglePosition is a Position without a dataset key.
type SinglePosition struct {
	Kind  PositionKind
	Point geom.Point
	Value float32
}

// Single shows exactly one dataset.
type Single[P raster.Drawable[P]] struct {
	*Widget[struct{}, P]
	session *Session[struct{}]
}

// NewSingle wraps d in a one-item widget with its own session.
func NewSingle[P raster.Drawable[P]](d *Dataset[P], settings Settings[P], opts WidgetOptions) *Single[P] {
	e := NewEngine([]Item[struct{}, P]{{Data: d}}, settings)
	w := NewWidget(e, opts)
	return &Single[P]{Widget: w, session: w.NewSession()}
}

// Session returns the single session.
func (s *Single[P]) Session() *Session[struct{}] { return s.session }

// Render returns the current frame.
func (s *Single[P]) Render() *raster.Buffer[P] { return s.Frame(s.session) }

// Move updates the pointer.
func (s *Single[P]) Move(pt *image.Point) { s.Hover(s.session, pt) }

// Position returns what the pointer is over.
func (s *Single[P]) Position() SinglePosition {
	h := s.session.Hover()
	return SinglePosition{Kind: h.Kind, Point: h.Point, Value: h.Value}
}

// Problem returns the problem of the last frame, or nil.
func (s *Single[P]) Problem() *RenderProblem { return s.session.RenderProblem() }

// Selected returns the selected points.
func (s *Single[P]) Selected() []geom.Point { return s.session.Selected() }

// CurrentlyShowing returns the shown rectangle.
func (s *Single[P]) CurrentlyShowing() (geom.Rect, bool) { return s.session.CurrentlyShowing() }
