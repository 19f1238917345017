package multimap

import (
	"fmt"

	"heatgrid/internal/font"
	"heatgrid/internal/geom"
	"heatgrid/internal/gradient"
	"heatgrid/internal/raster"
)

var exampleFont = font.Options{Transparent: true, Height: 12}

// ExampleOverlay labels anchor with "FP" and shows the corner coordinates.
func ExampleOverlay(anchor geom.Point, title string) Overlay {
	o, _ := NewOverlay(exampleFont, true, map[geom.Point]string{anchor: "FP"}, title)
	return o
}

// Example is a slice of the Oklab a/b plane at fixed lightness.
func Example(width, height int, anchor geom.Point) *Dataset[raster.RGBA] {
	d := &Dataset[raster.RGBA]{
		Width:   width,
		Height:  height,
		Pixels:  make([]raster.RGBA, 0, width*height),
		Anchor:  anchor,
		Overlay: ExampleOverlay(anchor, "Test"),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := gradient.Oklab{L: 0.8, A: unit(x, width), B: unit(y, height)}
			d.Pixels = append(d.Pixels, c.RGBA())
		}
	}
	return d
}

// ExampleDistance shades points by their distance to center and labels
// each point with its coordinates.
func ExampleDistance(width, height int, center geom.Point) *Dataset[raster.RGBA] {
	d := &Dataset[raster.RGBA]{
		Width:  width,
		Height: height,
		Pixels: make([]raster.RGBA, 0, width*height),
	}
	text := make(map[geom.Point]string, width*height)
	limit := float64((width + height) / 2)
	limit *= limit
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(center.X-x), float64(center.Y-y)
			b := min((dx*dx+dy*dy)/max(limit, 1), 1)
			d.Pixels = append(d.Pixels, gradient.Oklab{L: 0.8, B: b*2 - 1}.RGBA())
			text[geom.Point{X: x, Y: y}] = fmt.Sprintf("%d|%d", x, y)
		}
	}
	d.Overlay, _ = NewOverlay(exampleFont, true, text, "Distance")
	return d
}

// unit maps i in [0, n) onto [-1, 1].
func unit(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return 2*float64(i)/float64(n-1) - 1
}
