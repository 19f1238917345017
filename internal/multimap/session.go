package multimap

import "heatgrid/internal/geom"

// EventKind tells what happened in a session since the last drain.
type EventKind int

const (
	// EventShowAll: every dataset was made visible.
	EventShowAll EventKind = iota
	// EventHide: the dataset Key was hidden.
	EventHide
	// EventUnselectAll: the selection was cleared from the menu.
	EventUnselectAll
	// EventShowRectangle: the shown rectangle changed.
	EventShowRectangle
	// EventSelection: the selection changed.
	EventSelection
	// EventShow: the dataset Key was made visible again.
	EventShow
)

func (k EventKind) String() string {
	switch k {
	case EventShowAll:
		return "show-all"
	case EventHide:
		return "hide"
	case EventUnselectAll:
		return "unselect-all"
	case EventShowRectangle:
		return "show-rectangle"
	case EventSelection:
		return "selection"
	case EventShow:
		return "show"
	}
	return "unknown"
}

// Event is queued by widget operations and drained by the host.
type Event[K comparable] struct {
	Kind EventKind
	Key  K // set for EventHide and EventShow
}

// Session is everything one viewer of the datasets owns: the view state,
// the pointer, the last render problem and pending events.
type Session[K comparable] struct {
	State *State[K]

	keys    []K
	hover   Position[K]
	clicked bool
	problem *RenderProblem
	events  []Event[K]
}

// NewSession returns a session over datasets with the given keys.
func NewSession[K comparable](keys []K) *Session[K] {
	return &Session[K]{State: NewState[K](), keys: keys}
}

func (s *Session[K]) push(e Event[K]) { s.events = append(s.events, e) }

// Events returns and clears the queued events.
func (s *Session[K]) Events() []Event[K] {
	ev := s.events
	s.events = nil
	return ev
}

// Selected returns the selected points, sorted.
func (s *Session[K]) Selected() []geom.Point { return s.State.SelectedPoints() }

// MakeSelected replaces the selection with pts.
func (s *Session[K]) MakeSelected(pts []geom.Point) {
	clear(s.State.Selected)
	for _, p := range pts {
		s.State.Selected[p] = struct{}{}
	}
}

// ClearSelected empties the selection without queuing an event.
func (s *Session[K]) ClearSelected() { clear(s.State.Selected) }

// CurrentlyShowing returns the shown rectangle once it is known.
func (s *Session[K]) CurrentlyShowing() (geom.Rect, bool) { return s.State.ShownRect() }

// RenderProblem returns the problem of the last frame or export, or nil.
func (s *Session[K]) RenderProblem() *RenderProblem { return s.problem }

// ReportExportFailure records a failed clipboard export.
func (s *Session[K]) ReportExportFailure(err error) {
	if err == nil {
		return
	}
	s.problem = NewClipboardIssue(err.Error())
}

// Hover returns what the pointer is over.
func (s *Session[K]) Hover() Position[K] { return s.hover }

// Clicked returns the hover position if the last pointer event was a
// click on a data point.
func (s *Session[K]) Clicked() (Position[K], bool) { return s.hover, s.clicked }

// HasHidden reports whether any dataset is hidden.
func (s *Session[K]) HasHidden() bool {
	for _, v := range s.State.Visible {
		if !v {
			return true
		}
	}
	return false
}

// CanHide reports whether more than one dataset is visible.
func (s *Session[K]) CanHide() bool {
	n := 0
	for _, k := range s.keys {
		if s.State.IsVisible(k) {
			n++
		}
	}
	return n > 1
}

func (s *Session[K]) hide(key K) {
	s.push(Event[K]{Kind: EventHide, Key: key})
	s.State.Visible[key] = false
}

func (s *Session[K]) show(key K) {
	s.push(Event[K]{Kind: EventShow, Key: key})
	s.State.Visible[key] = true
}

func (s *Session[K]) showAll() {
	s.push(Event[K]{Kind: EventShowAll})
	for k := range s.State.Visible {
		s.State.Visible[k] = true
	}
}

// unselectAll reports whether anything was selected.
func (s *Session[K]) unselectAll() bool {
	s.push(Event[K]{Kind: EventUnselectAll})
	if len(s.State.Selected) == 0 {
		return false
	}
	clear(s.State.Selected)
	return true
}
