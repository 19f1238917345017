package multimap

import (
	"strings"

	"heatgrid/internal/font"
	"heatgrid/internal/geom"
	"heatgrid/internal/gradient"
	"heatgrid/internal/raster"
)

// glyph is a pixel made of one rune so frames can be compared as text.
type glyph rune

func (g glyph) Darken(f float32) glyph {
	if f < 1 {
		return '#'
	}
	return g
}

func (g glyph) AddIntensity(v uint8) glyph {
	if v == 0 {
		return g
	}
	return '*'
}

func (g glyph) Opaque() glyph { return g }

func (glyph) Gray(v uint8) glyph {
	if v == 0 {
		return ' '
	}
	return '*'
}

var _ raster.Drawable[glyph] = glyph(0)

// digits is width*height pixels cycling through '0'..'9'.
func digits(width, height int, anchor geom.Point) *Dataset[glyph] {
	d := &Dataset[glyph]{Width: width, Height: height, Anchor: anchor}
	for i := 0; i < width*height; i++ {
		d.Pixels = append(d.Pixels, glyph('0'+i%10))
	}
	return d
}

func glyphSettings() Settings[glyph] {
	return Settings[glyph]{
		BetweenData: ColorWithThickness[glyph]{Color: '-', Thickness: 2},
		Colorbar: &ColorbarSettings[glyph]{
			Gradient:  gradient.Gradient[glyph]{'a', 'b', 'c'},
			Thickness: 4,
			Lower:     0,
			Upper:     1,
		},
		Background:        '.',
		Unselected:        ColorWithThickness[glyph]{Color: 'r', Thickness: 1},
		Selected:          'w',
		BoundaryFactorMin: 7,
		Sentinel:          '?',
	}
}

// plain has no separators, no colorbar and outlines from two pixels on.
func plain() Settings[glyph] {
	s := glyphSettings()
	s.BetweenData.Thickness = 0
	s.Colorbar = nil
	s.BoundaryFactorMin = 1
	return s
}

func fourSquares() []Item[int, glyph] {
	anchors := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	items := make([]Item[int, glyph], len(anchors))
	for i, a := range anchors {
		items[i] = Item[int, glyph]{Key: i, Data: digits(5, 5, a)}
	}
	return items
}

func lines(b *raster.Buffer[glyph]) []string {
	out := make([]string, b.Height)
	for y := range out {
		var sb strings.Builder
		for _, g := range b.Row(y) {
			sb.WriteRune(rune(g))
		}
		out[y] = sb.String()
	}
	return out
}

// boxFace renders every string as one row of full-intensity texels,
// len(text)/divisor wide.
type boxFace struct {
	divisor int
	fail    string
}

func (f boxFace) Rasterize(text string, _ float64) (font.Bitmap, bool) {
	if text == f.fail {
		return font.Bitmap{}, false
	}
	w := max(len(text)/max(f.divisor, 1), 1)
	data := make([]uint8, w)
	for i := range data {
		data[i] = 0xff
	}
	return font.Bitmap{Width: w, Height: 1, Data: data}, true
}
