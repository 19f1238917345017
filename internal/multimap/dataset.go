package multimap

import (
	"heatgrid/internal/font"
	"heatgrid/internal/geom"
)

// Overlay is the text drawn on top of a dataset: a title, optional labels
// on single data points and optionally the corner coordinates.
type Overlay struct {
	Font            font.Options
	ShowCoordinates bool
	Title           string

	labels  map[geom.Point]int
	bitmaps []font.Bitmap
}

// NewOverlay renders the point labels once. Equal strings and strings that
// render to identical bitmaps share storage. It fails if any label cannot
// be rendered.
func NewOverlay(opts font.Options, showCoordinates bool, text map[geom.Point]string, title string) (Overlay, bool) {
	o := Overlay{
		Font:            opts,
		ShowCoordinates: showCoordinates,
		Title:           title,
		labels:          make(map[geom.Point]int, len(text)),
	}
	byString := make(map[string]int)
	for p, s := range text {
		idx, ok := byString[s]
		if !ok {
			bmp, rendered := opts.Render(s)
			if !rendered {
				return Overlay{}, false
			}
			idx = -1
			for i, b := range o.bitmaps {
				if b.Equal(bmp) {
					idx = i
					break
				}
			}
			if idx < 0 {
				idx = len(o.bitmaps)
				o.bitmaps = append(o.bitmaps, bmp)
			}
			byString[s] = idx
		}
		o.labels[p] = idx
	}
	return o, true
}

// label returns the rendered label at p.
func (o *Overlay) label(p geom.Point) (font.Bitmap, bool) {
	idx, ok := o.labels[p]
	if !ok {
		return font.Bitmap{}, false
	}
	return o.bitmaps[idx], true
}

// Labels calls fn for every labelled point.
func (o *Overlay) Labels(fn func(geom.Point, font.Bitmap)) {
	for p, idx := range o.labels {
		fn(p, o.bitmaps[idx])
	}
}

// uniqueBitmaps reports how many distinct label bitmaps are stored.
func (o *Overlay) uniqueBitmaps() int { return len(o.bitmaps) }

// Dataset is one rectangular block of pixels anchored at a data coordinate.
// It is not modified after construction.
type Dataset[P any] struct {
	Width   int
	Height  int
	Pixels  []P // row by row, Width*Height entries
	Anchor  geom.Point
	Overlay Overlay
}

// Lookup returns the pixel at data coordinate p.
func (d *Dataset[P]) Lookup(p geom.Point) (P, bool) {
	var zero P
	x, y := p.X-d.Anchor.X, p.Y-d.Anchor.Y
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return zero, false
	}
	return d.Pixels[y*d.Width+x], true
}

// Bounds returns [Anchor, Anchor+(Width,Height)).
func (d *Dataset[P]) Bounds() geom.Rect {
	return geom.RectAt(d.Anchor, geom.Offset{DX: d.Width, DY: d.Height})
}

// Item pairs a dataset with the key that identifies it in session state.
type Item[K comparable, P any] struct {
	Key  K
	Data *Dataset[P]
}
