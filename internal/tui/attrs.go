package tui

import (
	"math"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"heatgrid/internal/geom"
	"heatgrid/internal/multimap"
)

const maxColW = 14

// refreshSelection rebuilds the selection table: one row per selected
// point, one column per dataset.
func (m *Model) refreshSelection() {
	cols, rows := m.buildSelection()
	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len(r[i])+1)
		}
		tcols[i] = table.Column{Title: c, Width: min(w, maxColW)}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildSelection returns the table header and one row per selected point.
func (m *Model) buildSelection() ([]string, [][]string) {
	items := m.w.Engine().Items
	cols := make([]string, 0, len(items)+2)
	cols = append(cols, "x", "y")
	for _, it := range items {
		cols = append(cols, it.Key)
	}
	pts := m.s.Selected()
	rows := make([][]string, 0, len(pts))
	for _, p := range pts {
		row := make([]string, 0, len(cols))
		row = append(row, strconv.Itoa(p.X), strconv.Itoa(p.Y))
		for i := range items {
			row = append(row, m.cellText(i, p))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

// cellText shows the numeric value of dataset i at p, or its color when
// there is no numeric source. Points without data show "-".
func (m *Model) cellText(i int, p geom.Point) string {
	if i < len(m.sources) {
		src := &m.sources[i]
		v, ok := src.Heatmap.At(p.X-src.Anchor.X, p.Y-src.Anchor.Y)
		if f := float64(v); !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return "-"
		}
		return multimap.FormatScientific(v, 3)
	}
	c, ok := m.w.Engine().Items[i].Data.Lookup(p)
	if !ok {
		return "-"
	}
	return c.Hex()
}
