package multimap

import "heatgrid/internal/geom"

// State is the mutable view of one session: which datasets are visible,
// the selected points and the shown rectangle. One engine can drive any
// number of states.
type State[K comparable] struct {
	// Visible maps a dataset key to its visibility; absent keys are visible.
	Visible map[K]bool
	// Selected is global: a coordinate is selected regardless of dataset.
	Selected map[geom.Point]struct{}
	// Shown is nil until the first render or until Home.
	Shown *geom.Rect
}

// NewState returns an empty state with everything visible.
func NewState[K comparable]() *State[K] {
	return &State[K]{
		Visible:  make(map[K]bool),
		Selected: make(map[geom.Point]struct{}),
	}
}

// IsVisible reports whether key is shown.
func (s *State[K]) IsVisible(key K) bool {
	v, ok := s.Visible[key]
	return !ok || v
}

// IsSelected reports whether p is selected.
func (s *State[K]) IsSelected(p geom.Point) bool {
	_, ok := s.Selected[p]
	return ok
}

// ShownRect returns a copy of the shown rectangle.
func (s *State[K]) ShownRect() (geom.Rect, bool) {
	if s.Shown == nil {
		return geom.Rect{}, false
	}
	return *s.Shown, true
}

// Select toggles p. Without additive the previous selection is dropped
// first, so a plain click on the only selected point clears it.
func (s *State[K]) Select(p geom.Point, additive bool) {
	_, was := s.Selected[p]
	delete(s.Selected, p)
	if !additive {
		clear(s.Selected)
	}
	if !was {
		s.Selected[p] = struct{}{}
	}
}

// SelectedPoints returns the selection in a stable order.
func (s *State[K]) SelectedPoints() []geom.Point {
	pts := make([]geom.Point, 0, len(s.Selected))
	for p := range s.Selected {
		pts = append(pts, p)
	}
	geom.SortPoints(pts)
	return pts
}

// visibleItems keeps the shown items in their original order.
func visibleItems[K comparable, P any](items []Item[K, P], s *State[K]) []Item[K, P] {
	out := make([]Item[K, P], 0, len(items))
	for _, it := range items {
		if s.IsVisible(it.Key) {
			out = append(out, it)
		}
	}
	return out
}

// homeRect unions the bounding boxes of the visible datasets.
func homeRect[K comparable, P any](items []Item[K, P], s *State[K]) geom.Rect {
	var boxes []geom.Rect
	for _, it := range visibleItems(items, s) {
		boxes = append(boxes, it.Data.Bounds())
	}
	return geom.Bounds(boxes)
}
