package multimap

import (
	"fmt"
	"image"

	"heatgrid/internal/font"
	"heatgrid/internal/geom"
	"heatgrid/internal/raster"
)

// minLabelHeight is the smallest font height tried when shrinking text.
const minLabelHeight = 8

// blit draws bmp with its top-left corner at (x0, y0), clipped to clip.
// Transparent text adds its intensity to what is already there and skips
// empty texels; opaque text paints gray on the background.
func blit[P raster.Drawable[P]](buf *raster.Buffer[P], bmp font.Bitmap, x0, y0 int, clip image.Rectangle, transparent bool, background P) {
	clip = clip.Intersect(buf.Bounds())
	for row := 0; row < bmp.Height; row++ {
		for col := 0; col < bmp.Width; col++ {
			x, y := x0+col, y0+row
			if !(image.Point{X: x, Y: y}).In(clip) {
				continue
			}
			v, _ := bmp.Fetch(col, row)
			switch {
			case transparent && v == 0:
				continue
			case transparent:
				buf.Set(x, y, buf.At(x, y).AddIntensity(v))
			case v == 0:
				buf.Set(x, y, background)
			default:
				buf.Set(x, y, background.Gray(v))
			}
		}
	}
}

// shrinkToFit renders text at decreasing heights until accept returns true.
func shrinkToFit(opts font.Options, text string, accept func(font.Bitmap) bool) (font.Bitmap, bool) {
	for h := opts.Height; h > minLabelHeight; h-- {
		if bmp, ok := opts.WithHeight(h).Render(text); ok && accept(bmp) {
			return bmp, true
		}
	}
	return font.Bitmap{}, false
}

func (e *Engine[K, P]) drawTitle(buf *raster.Buffer[P], g grid, d *Dataset[P], ox, oy int, clip image.Rectangle) {
	if d.Overlay.Title == "" {
		return
	}
	bmp, ok := shrinkToFit(d.Overlay.Font, d.Overlay.Title, func(b font.Bitmap) bool {
		return b.Width < g.cellW*8/10
	})
	if !ok {
		return
	}
	x := ox + max(g.cellW-bmp.Width, 0)/2
	blit(buf, bmp, x, oy, clip, d.Overlay.Font.Transparent, e.Settings.Background)
}

// drawPointLabels centers each label on its data point block. Labels
// larger than one block are skipped.
func (e *Engine[K, P]) drawPointLabels(buf *raster.Buffer[P], g grid, m cellMap, d *Dataset[P], ox, oy int, clip image.Rectangle) {
	d.Overlay.Labels(func(p geom.Point, bmp font.Bitmap) {
		if !g.shown.Contains(p) || bmp.Width > m.x.perPoint || bmp.Height > m.y.perPoint {
			return
		}
		off := p.Sub(g.shown.LeftTop)
		x := ox + m.x.blockStart(off.DX) + (m.x.perPoint-bmp.Width)/2
		y := oy + m.y.blockStart(off.DY) + (m.y.perPoint-bmp.Height)/2
		blit(buf, bmp, x, y, clip, d.Overlay.Font.Transparent, e.Settings.Background)
	})
}

// drawCorners prints the coordinates of the first and last shown points
// in the four corners of the cell.
func (e *Engine[K, P]) drawCorners(buf *raster.Buffer[P], g grid, d *Dataset[P], ox, oy int, clip image.Rectangle) {
	lt, rb := g.shown.LeftTop, g.shown.Last()
	corners := []struct {
		p            geom.Point
		right, lower bool
	}{
		{geom.Point{X: lt.X, Y: lt.Y}, false, false},
		{geom.Point{X: lt.X, Y: rb.Y}, false, true},
		{geom.Point{X: rb.X, Y: lt.Y}, true, false},
		{geom.Point{X: rb.X, Y: rb.Y}, true, true},
	}
	for _, c := range corners {
		bmp, ok := d.Overlay.Font.Render(c.p.String())
		if !ok {
			continue
		}
		x, y := ox, oy
		if c.right {
			x += max(g.cellW-bmp.Width, 0)
		}
		if c.lower {
			y += max(g.cellH-bmp.Height, 0)
		}
		blit(buf, bmp, x, y, clip, d.Overlay.Font.Transparent, e.Settings.Background)
	}
}

// drawColorbarLabels spreads evenly spaced values over the colorbar,
// highest on top, each shrunk until it is narrower than the bar.
func (e *Engine[K, P]) drawColorbarLabels(buf *raster.Buffer[P], opts font.Options) {
	cb := e.Settings.Colorbar
	n := cb.labels()
	w, h := buf.Width, buf.Height
	for j := 0; j < n; j++ {
		v := cb.Lower + (cb.Upper-cb.Lower)/float32(n-1)*float32(n-1-j)
		bmp, ok := colorbarLabel(opts, v, cb.Thickness)
		if !ok || h <= bmp.Height || w <= bmp.Width {
			continue
		}
		center := h * j / (n - 1)
		top := min(max(center-bmp.Height/2, 0), h-bmp.Height)
		left := max(w-bmp.Width, 0)
		blit(buf, bmp, left, top, buf.Bounds(), opts.Transparent, e.Settings.Background)
	}
}

func colorbarLabel(opts font.Options, v float32, thickness int) (font.Bitmap, bool) {
	for h := opts.Height; h > minLabelHeight; h-- {
		sized := opts.WithHeight(h)
		for prec := 4; prec >= 1; prec-- {
			if bmp, ok := sized.Render(FormatScientific(v, prec)); ok && bmp.Width < thickness {
				return bmp, true
			}
		}
	}
	return font.Bitmap{}, false
}

// FormatScientific prints v with an explicit sign, prec fraction digits
// and a signed exponent of at least two digits, e.g. +1.2500E-03.
func FormatScientific(v float32, prec int) string {
	return fmt.Sprintf("%+.*E", prec, v)
}
