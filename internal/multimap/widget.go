package multimap

import (
	"errors"
	"image"
	"math"

	"heatgrid/internal/geom"
	"heatgrid/internal/raster"
)

// Defaults for WidgetOptions.
const (
	DefaultScrollDivisor     = 50
	DefaultShiftScrollFactor = 5
)

// WidgetOptions tune a widget.
type WidgetOptions struct {
	// Width and Height fix the raster size; zero means follow Resize.
	Width, Height int
	// ScrollDivisor converts scroll deltas into zoom steps.
	ScrollDivisor float64
	// ShiftScrollFactor scales horizontal scrolling while shift is held.
	ShiftScrollFactor float64
}

// Key is a keyboard command understood by the widget.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyZoomIn
	KeyZoomOut
	KeyHome
)

// Widget turns pointer and keyboard input into state changes and caches
// the last frame. The drag box belongs to the widget, not the session,
// since it follows one pointer.
type Widget[K comparable, P raster.Drawable[P]] struct {
	engine *Engine[K, P]
	drag   Drag

	width, height int
	autoSize      bool
	dirty         bool
	frame         *raster.Buffer[P]
	// owner is the session frame was rendered for.
	owner *Session[K]

	scrollDivisor float64
	shiftFactor   float64
	pointer       *image.Point
}

// NewWidget wraps engine.
func NewWidget[K comparable, P raster.Drawable[P]](engine *Engine[K, P], opts WidgetOptions) *Widget[K, P] {
	w := &Widget[K, P]{
		engine:        engine,
		width:         opts.Width,
		height:        opts.Height,
		autoSize:      opts.Width <= 0 || opts.Height <= 0,
		dirty:         true,
		scrollDivisor: opts.ScrollDivisor,
		shiftFactor:   opts.ShiftScrollFactor,
	}
	if !(w.scrollDivisor > 0) {
		w.scrollDivisor = DefaultScrollDivisor
	}
	if !(w.shiftFactor > 0) {
		w.shiftFactor = DefaultShiftScrollFactor
	}
	return w
}

// Engine returns the engine in use.
func (w *Widget[K, P]) Engine() *Engine[K, P] { return w.engine }

// NewSession returns a session over the widget's datasets.
func (w *Widget[K, P]) NewSession() *Session[K] { return NewSession(w.engine.Keys()) }

// SetEngine swaps the datasets, for example after a reload. Sessions keep
// their state.
func (w *Widget[K, P]) SetEngine(e *Engine[K, P], sessions ...*Session[K]) {
	w.engine = e
	for _, s := range sessions {
		s.keys = e.Keys()
	}
	w.dirty = true
}

// Resize adopts the available size when the widget has no fixed size.
func (w *Widget[K, P]) Resize(width, height int) {
	if !w.autoSize || (w.width == width && w.height == height) {
		return
	}
	w.width, w.height = width, height
	w.dirty = true
}

// Size returns the raster size.
func (w *Widget[K, P]) Size() (width, height int) { return w.width, w.height }

// Regime reports how the current view samples the data.
func (w *Widget[K, P]) Regime(s *Session[K]) (Regime, error) {
	return w.engine.Regime(w.width, w.height, s.State)
}

// Invalidate forces the next Frame to render.
func (w *Widget[K, P]) Invalidate() { w.dirty = true }

// Dirty reports whether the next Frame will render.
func (w *Widget[K, P]) Dirty() bool { return w.dirty || w.frame == nil }

// Frame returns the current raster, rendering only when something changed
// or when the cached frame belongs to another session.
func (w *Widget[K, P]) Frame(s *Session[K]) *raster.Buffer[P] {
	if !w.Dirty() && w.owner == s {
		return w.frame
	}
	w.dirty = false
	w.owner = s
	buf, err := w.engine.Render(w.width, w.height, s.State, &w.drag)
	s.problem = nil
	var p *RenderProblem
	if errors.As(err, &p) {
		s.problem = p
	}
	w.frame = buf
	return buf
}

// Snapshot renders the current view without touching the cache.
func (w *Widget[K, P]) Snapshot(s *Session[K]) (*raster.Buffer[P], error) {
	return w.engine.Render(w.width, w.height, s.State, nil)
}

// track runs fn and queues EventShowRectangle if it moved the view.
func (w *Widget[K, P]) track(s *Session[K], fn func()) {
	before, had := s.State.ShownRect()
	fn()
	after, has := s.State.ShownRect()
	if had != has || before != after {
		s.push(Event[K]{Kind: EventShowRectangle})
	}
}

// shown returns the shown rectangle, initializing it like Render does.
func (w *Widget[K, P]) shown(s *Session[K]) *geom.Rect {
	if s.State.Shown == nil {
		w.engine.Home(s.State)
	}
	return s.State.Shown
}

func (w *Widget[K, P]) locate(s *Session[K], pt *image.Point) Position[K] {
	if pt == nil {
		return Position[K]{}
	}
	return w.engine.PixelToLogical(*pt, w.width, w.height, s.State)
}

// Hover moves the pointer; nil means it left the raster.
func (w *Widget[K, P]) Hover(s *Session[K], pt *image.Point) {
	if pt != nil {
		p := *pt
		pt = &p
	}
	w.pointer = pt
	s.clicked = false
	s.hover = w.locate(s, pt)
}

// relocate recomputes the hover after the view or the visible set moved
// under a resting pointer.
func (w *Widget[K, P]) relocate(s *Session[K]) {
	s.hover = w.locate(s, w.pointer)
}

// Click selects the hovered point. additive keeps the other selected
// points.
func (w *Widget[K, P]) Click(s *Session[K], additive bool) {
	p, ok := s.hover.Coordinate()
	if !ok {
		return
	}
	s.clicked = true
	s.push(Event[K]{Kind: EventSelection})
	s.State.Select(p, additive)
	w.dirty = true
}

// DoubleClick centers the view on the hovered point.
func (w *Widget[K, P]) DoubleClick(s *Session[K]) {
	p, ok := s.hover.Coordinate()
	if !ok {
		return
	}
	w.track(s, func() { CenterTo(w.shown(s), p) })
	w.relocate(s)
	w.dirty = true
}

// DragStart begins a box selection at the hovered point.
func (w *Widget[K, P]) DragStart(s *Session[K]) {
	if p, ok := s.hover.Coordinate(); ok {
		w.drag.Start(p)
		w.dirty = true
	}
}

// DragMove stretches the box to the hovered point.
func (w *Widget[K, P]) DragMove(s *Session[K]) {
	if p, ok := s.hover.Coordinate(); ok && w.drag.Update(p) {
		w.dirty = true
	}
}

// Dragging reports whether a box selection is in progress.
func (w *Widget[K, P]) Dragging() bool { return w.drag.Active() }

// DragRelease ends the box selection; a large enough box becomes the view.
func (w *Widget[K, P]) DragRelease(s *Session[K]) {
	if !w.drag.Active() {
		return
	}
	var end *geom.Point
	if p, ok := s.hover.Coordinate(); ok {
		end = &p
	}
	w.track(s, func() { w.drag.Release(end, w.shown(s)) })
	w.relocate(s)
	w.dirty = true
}

// Scroll zooms around the pointer. Vertical deltas zoom; with shift the
// horizontal delta, scaled by ShiftScrollFactor, is used instead. The
// point under the pointer stays where it is.
func (w *Widget[K, P]) Scroll(s *Session[K], dx, dy float64, shift bool) {
	delta := dy
	if shift {
		delta = dx * w.shiftFactor
	}
	steps := int(math.Round(delta / w.scrollDivisor))
	if steps == 0 {
		return
	}
	before, ok := w.locate(s, w.pointer).Coordinate()
	if !ok {
		return
	}
	w.track(s, func() {
		r := w.shown(s)
		Zoom(r, steps)
		if after, ok := w.locate(s, w.pointer).Coordinate(); ok {
			Translate(r, before.Sub(after))
		}
	})
	w.relocate(s)
	w.dirty = true
}

// Key applies a keyboard command.
func (w *Widget[K, P]) Key(s *Session[K], k Key) {
	w.track(s, func() {
		switch k {
		case KeyUp:
			Pan(w.shown(s), Up)
		case KeyDown:
			Pan(w.shown(s), Down)
		case KeyLeft:
			Pan(w.shown(s), Left)
		case KeyRight:
			Pan(w.shown(s), Right)
		case KeyZoomIn:
			Zoom(w.shown(s), 1)
		case KeyZoomOut:
			Zoom(w.shown(s), -1)
		case KeyHome:
			w.engine.Home(s.State)
		}
	})
	w.relocate(s)
	w.dirty = true
}

// HomeView shows all visible data.
func (w *Widget[K, P]) HomeView(s *Session[K]) { w.Key(s, KeyHome) }

// UnselectAll clears the selection.
func (w *Widget[K, P]) UnselectAll(s *Session[K]) {
	if s.unselectAll() {
		w.dirty = true
	}
}

// ShowAll makes every dataset visible again.
func (w *Widget[K, P]) ShowAll(s *Session[K]) {
	if !s.HasHidden() {
		return
	}
	s.showAll()
	w.dirty = true
}

// HideHovered hides the dataset under the pointer, keeping at least one
// visible. It reports whether a dataset was hidden.
func (w *Widget[K, P]) HideHovered(s *Session[K]) bool {
	if _, ok := s.hover.Coordinate(); !ok || !s.CanHide() {
		return false
	}
	s.hide(s.hover.Key)
	w.relocate(s)
	w.dirty = true
	return true
}

// Toggle flips the visibility of one dataset. The last visible dataset
// cannot be hidden; Toggle then reports false.
func (w *Widget[K, P]) Toggle(s *Session[K], key K) bool {
	if s.State.IsVisible(key) {
		if !s.CanHide() {
			return false
		}
		s.hide(key)
	} else {
		s.show(key)
	}
	w.relocate(s)
	w.dirty = true
	return true
}
