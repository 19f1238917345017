// Package loader reads numeric grids from disk and turns them into datasets.
package loader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"heatgrid/internal/font"
	"heatgrid/internal/geom"
	"heatgrid/internal/gradient"
	"heatgrid/internal/multimap"
	"heatgrid/internal/raster"
)

// Source is one numeric grid read from a file.
type Source struct {
	Key     string
	Path    string
	Title   string
	Anchor  geom.Point
	Heatmap multimap.Heatmap
	Labels  map[geom.Point]string
}

// Bounds returns the data coordinates covered by the grid.
func (s *Source) Bounds() geom.Rect {
	return geom.RectAt(s.Anchor, geom.Offset{DX: s.Heatmap.Width, DY: s.Heatmap.Height})
}

// Load reads path, picking the format from the extension.
func Load(path string) ([]Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		srcs []Source
		err  error
	)
	switch ext {
	case ".csv":
		srcs, err = LoadCSV(path)
	case ".json":
		srcs, err = LoadJSON(path)
	case ".wkt":
		srcs, err = loadWKTMask(path)
	default:
		return nil, fmt.Errorf("unsupported file: %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	for i := range srcs {
		srcs[i].Path = path
	}
	return srcs, nil
}

// LoadAll reads every path in order.
func LoadAll(paths []string) ([]Source, error) {
	var out []Source
	for _, p := range paths {
		srcs, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, srcs...)
	}
	return out, nil
}

// Limits returns the finite value range over all sources. Without any
// finite value it returns [0, 1].
func Limits(srcs []Source) (lower, upper float32) {
	lower, upper = float32(math.Inf(1)), float32(math.Inf(-1))
	found := false
	for i := range srcs {
		lo, hi, ok := srcs[i].Heatmap.Limits()
		if !ok {
			continue
		}
		lower, upper, found = min(lower, lo), max(upper, hi), true
	}
	if !found {
		return 0, 1
	}
	return lower, upper
}

// Style is how sources are turned into colored datasets.
type Style struct {
	Gradient        gradient.Gradient[raster.RGBA]
	Background      raster.RGBA
	Font            font.Options
	ShowCoordinates bool
	// Lower and Upper clamp the values; equal values use Limits.
	Lower, Upper float32
}

// Items colors the sources with one shared value range and gives each a
// unique key. Labels that cannot be rendered are dropped.
func Items(srcs []Source, st Style) []multimap.Item[string, raster.RGBA] {
	lower, upper := st.Lower, st.Upper
	if lower == upper {
		lower, upper = Limits(srcs)
	}
	seen := make(map[string]int, len(srcs))
	items := make([]multimap.Item[string, raster.RGBA], 0, len(srcs))
	for i := range srcs {
		src := &srcs[i]
		key := uniqueKey(seen, src.Key)
		overlay, ok := multimap.NewOverlay(st.Font, st.ShowCoordinates, src.Labels, src.Title)
		if !ok {
			overlay, _ = multimap.NewOverlay(st.Font, st.ShowCoordinates, nil, src.Title)
		}
		items = append(items, multimap.Item[string, raster.RGBA]{
			Key:  key,
			Data: src.Heatmap.Dataset(lower, upper, st.Gradient, st.Background, src.Anchor, overlay),
		})
	}
	return items
}

func uniqueKey(seen map[string]int, key string) string {
	if key == "" {
		key = "data"
	}
	seen[key]++
	n := seen[key]
	if n == 1 {
		return key
	}
	for {
		candidate := fmt.Sprintf("%s#%d", key, n)
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = 1
			return candidate
		}
		n++
	}
}

// baseKey derives a dataset key from a file name.
func baseKey(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func loadWKTMask(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pts, err := ParseMultiPoint(string(data))
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	src, err := gridFrom(pts)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	for _, p := range pts {
		src.set(p, 1)
	}
	key := baseKey(path)
	return []Source{{Key: key, Title: key, Anchor: src.anchor, Heatmap: src.heatmap}}, nil
}

// denseGrid collects scattered points into a NaN-initialized grid.
type denseGrid struct {
	anchor  geom.Point
	heatmap multimap.Heatmap
}

// MaxGridPoints bounds the cells of one loaded grid.
const MaxGridPoints = 1 << 24

// ErrGridTooLarge is returned when the points span more than MaxGridPoints
// cells.
var ErrGridTooLarge = errors.New("grid too large")

// gridSize checks w x h against MaxGridPoints. A wrapped subtraction shows
// up as a non-positive side.
func gridSize(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxGridPoints || h > MaxGridPoints || w*h > MaxGridPoints {
		return ErrGridTooLarge
	}
	return nil
}

func gridFrom(pts []geom.Point) (*denseGrid, error) {
	lt, rb := pts[0], pts[0]
	for _, p := range pts[1:] {
		lt.X, lt.Y = min(lt.X, p.X), min(lt.Y, p.Y)
		rb.X, rb.Y = max(rb.X, p.X), max(rb.Y, p.Y)
	}
	w, h := rb.X-lt.X+1, rb.Y-lt.Y+1
	if err := gridSize(w, h); err != nil {
		return nil, err
	}
	g := &denseGrid{anchor: lt, heatmap: multimap.Heatmap{Width: w, Height: h, Values: make([]float32, w*h)}}
	nan := float32(math.NaN())
	for i := range g.heatmap.Values {
		g.heatmap.Values[i] = nan
	}
	return g, nil
}

func (g *denseGrid) set(p geom.Point, v float32) {
	x, y := p.X-g.anchor.X, p.Y-g.anchor.Y
	g.heatmap.Values[y*g.heatmap.Width+x] = v
}
