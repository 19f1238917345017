package multimap

import (
	"image"

	"heatgrid/internal/logger"
	"heatgrid/internal/raster"
)

// Render draws the visible datasets of st into a width x height buffer.
// A nil shown rectangle is initialized to the home view first. drag, if
// not nil, darkens the points it covers.
//
// On failure the returned buffer has the requested size and is filled
// with Settings.Sentinel; the error is a *RenderProblem.
func (e *Engine[K, P]) Render(width, height int, st *State[K], drag *Drag) (*raster.Buffer[P], error) {
	buf, err := e.render(width, height, st, drag)
	if err != nil {
		logger.L().Debug("multimap: render problem", "width", width, "height", height, "err", err)
		return raster.NewBuffer(width, height, e.Settings.Sentinel), err
	}
	return buf, nil
}

func (e *Engine[K, P]) render(width, height int, st *State[K], drag *Drag) (*raster.Buffer[P], error) {
	if st.Shown == nil {
		if len(e.Items) == 0 {
			return nil, ErrNoData
		}
		e.Home(st)
	}
	items := visibleItems(e.Items, st)
	g, err := e.layoutFor(width, height, len(items), *st.Shown)
	if err != nil {
		return nil, err
	}
	buf := raster.NewBuffer(width, height, e.Settings.Background)
	e.drawStrips(buf, g)
	m := e.cellMap(g)
	for idx, it := range items {
		e.drawCell(buf, g, m, idx, it.Data, st, drag)
	}
	if e.Settings.Colorbar != nil {
		e.drawColorbar(buf)
	}
	return buf, nil
}

// drawStrips paints the separators above and left of every grid slot
// except those in the first row or column.
func (e *Engine[K, P]) drawStrips(buf *raster.Buffer[P], g grid) {
	c := e.Settings.BetweenData.Color
	plotW := g.columns*g.cellW + g.gap*(g.columns-1)
	for row := 1; row < g.rows; row++ {
		for i := 0; i < g.gap; i++ {
			y := row*(g.cellH+g.gap) - g.gap + i
			for x := 0; x < plotW; x++ {
				buf.Set(x, y, c)
			}
		}
	}
	for row := 0; row < g.rows; row++ {
		for col := 1; col < g.columns; col++ {
			for j := 0; j < g.gap; j++ {
				x := col*(g.cellW+g.gap) - g.gap + j
				for i := 0; i < g.cellH; i++ {
					buf.Set(x, row*(g.cellH+g.gap)+i, c)
				}
			}
		}
	}
}

func (e *Engine[K, P]) drawCell(buf *raster.Buffer[P], g grid, m cellMap, idx int, d *Dataset[P], st *State[K], drag *Drag) {
	ox, oy := g.origin(idx)
	s := &e.Settings
	for cy := 0; cy < g.cellH; cy++ {
		for cx := 0; cx < g.cellW; cx++ {
			p, ok, edge := m.project(cx, cy)
			c := s.Background
			if ok {
				if v, has := d.Lookup(p); has {
					c = v
					if edge {
						if st.IsSelected(p) {
							c = s.Selected
						} else {
							c = s.Unselected.Color
						}
					}
				}
				if drag.Covers(p) {
					c = c.Darken(0.5)
				}
			}
			buf.Set(ox+cx, oy+cy, c.Opaque())
		}
	}

	clip := image.Rect(ox, oy, ox+g.cellW, oy+g.cellH)
	e.drawTitle(buf, g, d, ox, oy, clip)
	if m.regime() == SuperSample {
		e.drawPointLabels(buf, g, m, d, ox, oy, clip)
	}
	if d.Overlay.ShowCoordinates {
		e.drawCorners(buf, g, d, ox, oy, clip)
	}
}

func (e *Engine[K, P]) drawColorbar(buf *raster.Buffer[P]) {
	cb := e.Settings.Colorbar
	w, h := buf.Width, buf.Height
	gap := e.Settings.BetweenData.Thickness
	for y := 0; y < h; y++ {
		for j := 0; j < gap; j++ {
			buf.Set(w-gap-cb.Thickness+j, y, e.Settings.BetweenData.Color)
		}
		c := cb.Gradient.ElementAt(h-1-y, h).Opaque()
		for j := 0; j < cb.Thickness; j++ {
			buf.Set(w-cb.Thickness+j, y, c)
		}
	}
	if len(e.Items) > 0 {
		e.drawColorbarLabels(buf, e.Items[0].Data.Overlay.Font)
	}
}
