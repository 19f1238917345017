package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"heatgrid/internal/geom"
	"heatgrid/internal/multimap"
)

// jsonGrid is one grid in a JSON file. Values are row by row; Rows is the
// nested alternative. null marks a point without data.
type jsonGrid struct {
	Key    string            `json:"key"`
	Title  string            `json:"title"`
	Anchor [2]int            `json:"anchor"`
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Values []*float64        `json:"values"`
	Rows   [][]*float64      `json:"rows"`
	Labels map[string]string `json:"labels"`
}

// LoadJSON reads a single grid object or an array of them.
func LoadJSON(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f, baseKey(path))
}

// ReadJSON is LoadJSON on a reader; key names grids without a key.
func ReadJSON(r io.Reader, key string) ([]Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty json")
	}
	var grids []jsonGrid
	if data[0] == '[' {
		err = json.Unmarshal(data, &grids)
	} else {
		var g jsonGrid
		err = json.Unmarshal(data, &g)
		grids = []jsonGrid{g}
	}
	if err != nil {
		return nil, err
	}
	if len(grids) == 0 {
		return nil, errors.New("json: no grids")
	}

	out := make([]Source, 0, len(grids))
	for i, g := range grids {
		src, err := g.source()
		if err != nil {
			return nil, fmt.Errorf("json grid %d: %w", i, err)
		}
		if src.Key == "" {
			src.Key = key
		}
		if src.Title == "" {
			src.Title = src.Key
		}
		out = append(out, src)
	}
	return out, nil
}

func (g jsonGrid) source() (Source, error) {
	values := g.Values
	w, h := g.Width, g.Height
	if len(g.Rows) > 0 {
		h, w = len(g.Rows), len(g.Rows[0])
		values = make([]*float64, 0, w*h)
		for y, row := range g.Rows {
			if len(row) != w {
				return Source{}, fmt.Errorf("row %d has %d values, want %d", y, len(row), w)
			}
			values = append(values, row...)
		}
	}
	if w <= 0 || h <= 0 {
		return Source{}, fmt.Errorf("size %dx%d must be positive", w, h)
	}
	if err := gridSize(w, h); err != nil {
		return Source{}, err
	}
	if len(values) != w*h {
		return Source{}, fmt.Errorf("%d values for a %dx%d grid", len(values), w, h)
	}

	hm := multimap.Heatmap{Width: w, Height: h, Values: make([]float32, len(values))}
	for i, v := range values {
		if v == nil {
			hm.Values[i] = float32(math.NaN())
			continue
		}
		hm.Values[i] = float32(*v)
	}

	var labels map[geom.Point]string
	for k, text := range g.Labels {
		p, err := parseLabelKey(k)
		if err != nil {
			return Source{}, err
		}
		if labels == nil {
			labels = make(map[geom.Point]string, len(g.Labels))
		}
		labels[p] = text
	}
	return Source{
		Key:     g.Key,
		Title:   g.Title,
		Anchor:  geom.Point{X: g.Anchor[0], Y: g.Anchor[1]},
		Heatmap: hm,
		Labels:  labels,
	}, nil
}

// parseLabelKey reads "x|y" or "x,y".
func parseLabelKey(k string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(k, "|")
	if !ok {
		xs, ys, ok = strings.Cut(k, ",")
	}
	if !ok {
		return geom.Point{}, fmt.Errorf("label key %q: want x|y", k)
	}
	x, err1 := strconv.Atoi(strings.TrimSpace(xs))
	y, err2 := strconv.Atoi(strings.TrimSpace(ys))
	if err1 != nil || err2 != nil {
		return geom.Point{}, fmt.Errorf("label key %q: want x|y", k)
	}
	return geom.Point{X: x, Y: y}, nil
}
