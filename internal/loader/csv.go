package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"heatgrid/internal/geom"
)

type csvColumns struct {
	x, y, value, label, dataset int
}

// detectColumns finds the columns by header name (case-insensitive):
// x|col|column, y|row, value|v|z|val, and optional label|text and
// dataset|name|key.
func detectColumns(header []string) (csvColumns, error) {
	c := csvColumns{x: -1, y: -1, value: -1, label: -1, dataset: -1}
	pick := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "col", "column":
			pick(&c.x, i)
		case "y", "row":
			pick(&c.y, i)
		case "value", "v", "z", "val":
			pick(&c.value, i)
		case "label", "text":
			pick(&c.label, i)
		case "dataset", "name", "key":
			pick(&c.dataset, i)
		}
	}
	if c.x == -1 || c.y == -1 || c.value == -1 {
		return c, errors.New("csv: x/y/value columns not found")
	}
	return c, nil
}

type csvCell struct {
	p     geom.Point
	value float32
	label string
}

// LoadCSV reads one value per row. Points missing from the file have no
// data. A dataset column splits the file into several sources, in order of
// first appearance.
func LoadCSV(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, baseKey(path))
}

// ReadCSV is LoadCSV on a reader; key names the source when the file has
// no dataset column.
func ReadCSV(r io.Reader, key string) ([]Source, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	cols, err := detectColumns(recs[0])
	if err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string][]csvCell)
	for _, row := range recs[1:] {
		x, err1 := strconv.Atoi(field(row, cols.x))
		y, err2 := strconv.Atoi(field(row, cols.y))
		if err1 != nil || err2 != nil {
			continue
		}
		name := key
		if cols.dataset >= 0 {
			if n := field(row, cols.dataset); n != "" {
				name = n
			}
		}
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], csvCell{
			p:     geom.Point{X: x, Y: y},
			value: parseValue(field(row, cols.value)),
			label: field(row, cols.label),
		})
	}
	if len(order) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}

	out := make([]Source, 0, len(order))
	for _, name := range order {
		cells := groups[name]
		pts := make([]geom.Point, len(cells))
		for i, c := range cells {
			pts[i] = c.p
		}
		g, err := gridFrom(pts)
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		var labels map[geom.Point]string
		for _, c := range cells {
			g.set(c.p, c.value)
			if c.label != "" {
				if labels == nil {
					labels = make(map[geom.Point]string)
				}
				labels[c.p] = c.label
			}
		}
		out = append(out, Source{Key: name, Title: name, Anchor: g.anchor, Heatmap: g.heatmap, Labels: labels})
	}
	return out, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseValue reads a number; empty or unparsable cells have no data.
func parseValue(s string) float32 {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return float32(math.NaN())
	}
	return float32(v)
}
