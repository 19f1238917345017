package multimap

import (
	"heatgrid/internal/geom"
	"heatgrid/internal/logger"
	"heatgrid/internal/raster"
)

// Engine renders a fixed list of datasets. It holds no per-session data,
// so one engine can serve many States over the same datasets.
type Engine[K comparable, P raster.Drawable[P]] struct {
	Items    []Item[K, P]
	Settings Settings[P]
}

// NewEngine wraps items and settings.
func NewEngine[K comparable, P raster.Drawable[P]](items []Item[K, P], settings Settings[P]) *Engine[K, P] {
	return &Engine[K, P]{Items: items, Settings: settings}
}

// DefaultState returns a fresh state for this engine.
func (e *Engine[K, P]) DefaultState() *State[K] { return NewState[K]() }

// Home resets the shown rectangle to the union of the visible datasets.
func (e *Engine[K, P]) Home(st *State[K]) {
	r := homeRect(e.Items, st)
	st.Shown = &r
	logger.L().Debug("multimap: home", "shown", r.String())
}

// Keys lists the dataset keys in drawing order.
func (e *Engine[K, P]) Keys() []K {
	keys := make([]K, len(e.Items))
	for i, it := range e.Items {
		keys[i] = it.Key
	}
	return keys
}

// grid is the pixel geometry of one frame. Render and hit-test both
// derive it through layoutFor so they cannot disagree.
type grid struct {
	width, height int
	columns, rows int
	cellW, cellH  int
	gap           int
	plotW         int // pixels left of the colorbar area
	count         int
	shown         geom.Rect
}

func (e *Engine[K, P]) reserved() int {
	if e.Settings.Colorbar == nil {
		return 0
	}
	return e.Settings.Colorbar.Thickness + e.Settings.BetweenData.Thickness
}

// layoutFor computes the frame geometry for count visible datasets.
func (e *Engine[K, P]) layoutFor(width, height, count int, shown geom.Rect) (grid, error) {
	g := grid{width: width, height: height, count: count, shown: shown, gap: max(e.Settings.BetweenData.Thickness, 0)}
	if count == 0 {
		return g, ErrCountIsZero
	}
	g.columns, g.rows = ComputeGrid(count)
	reserved := e.reserved()
	if width < reserved {
		return g, ErrWidthSmallerThanColorBar
	}
	g.plotW = width - reserved
	g.cellW = max((g.plotW-g.gap*(g.columns-1))/g.columns, 0)
	g.cellH = max((height-g.gap*(g.rows-1))/g.rows, 0)
	return g, nil
}

// origin returns the raster position of the top-left pixel of cell idx.
func (g grid) origin(idx int) (x, y int) {
	col, row := idx%g.columns, idx/g.columns
	return col * (g.cellW + g.gap), row * (g.cellH + g.gap)
}

// locate finds the cell under raster pixel (x, y) and the offset inside it.
// Inter-cell strips, unused grid slots and zero-sized cells yield false.
func (g grid) locate(x, y int) (idx, cx, cy int, ok bool) {
	if x < 0 || y < 0 || x >= g.plotW || y >= g.height || g.cellW == 0 || g.cellH == 0 {
		return 0, 0, 0, false
	}
	col, row := x/(g.cellW+g.gap), y/(g.cellH+g.gap)
	cx, cy = x-col*(g.cellW+g.gap), y-row*(g.cellH+g.gap)
	if col >= g.columns || row >= g.rows || cx >= g.cellW || cy >= g.cellH {
		return 0, 0, 0, false
	}
	idx = row*g.columns + col
	if idx >= g.count {
		return 0, 0, 0, false
	}
	return idx, cx, cy, true
}

// cellMap builds the per-axis mapping shared by every cell of the frame.
func (e *Engine[K, P]) cellMap(g grid) cellMap {
	return newCellMap(g.shown, g.cellW, g.cellH, e.Settings.Unselected.Thickness, e.Settings.BoundaryFactorMin)
}

// Regime reports how the shown rectangle maps onto cells of a
// width x height raster.
func (e *Engine[K, P]) Regime(width, height int, st *State[K]) (Regime, error) {
	shown, ok := st.ShownRect()
	if !ok {
		shown = homeRect(e.Items, st)
	}
	g, err := e.layoutFor(width, height, len(visibleItems(e.Items, st)), shown)
	if err != nil {
		return SubSample, err
	}
	return e.cellMap(g).regime(), nil
}
