// Package font renders short strings into 8-bit intensity bitmaps used for
// titles, coordinate labels and colorbar ticks.
package font

import (
	"fmt"
	"math"
	"strings"
)

// Bitmap is a rendered string: Width*Height coverage values, row by row.
type Bitmap struct {
	Width  int
	Height int
	Data   []uint8
}

// Fetch returns the intensity at (x, y), or false outside the bitmap.
func (b Bitmap) Fetch(x, y int) (uint8, bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, false
	}
	return b.Data[y*b.Width+x], true
}

// Equal reports whether two bitmaps have identical pixels.
func (b Bitmap) Equal(o Bitmap) bool {
	if b.Width != o.Width || b.Height != o.Height || len(b.Data) != len(o.Data) {
		return false
	}
	for i := range b.Data {
		if b.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

// Rasterizer turns text into a bitmap roughly height pixels tall.
// It returns false when the text cannot be rendered; callers skip the label.
type Rasterizer interface {
	Rasterize(text string, height float64) (Bitmap, bool)
}

// Options are the font settings of an overlay.
type Options struct {
	// Face renders the glyphs; nil selects Mono.
	Face Rasterizer
	// Transparent blends text additively over the existing pixels;
	// otherwise text is drawn as gray on the background color.
	Transparent bool
	// Height is the target pixel height.
	Height float64
}

// Render rasterizes text with these options.
func (o Options) Render(text string) (Bitmap, bool) {
	if text == "" || !(o.Height > 0) || math.IsInf(o.Height, 0) {
		return Bitmap{}, false
	}
	face := o.Face
	if face == nil {
		face = Mono
	}
	return face.Rasterize(text, o.Height)
}

// WithHeight returns a copy with a different target height.
func (o Options) WithHeight(h float64) Options {
	o.Height = h
	return o
}

// ByName resolves a face name used in configuration files.
func ByName(name string) (Rasterizer, error) {
	switch strings.ToLower(name) {
	case "", "mono", "monospace":
		return Mono, nil
	case "basic", "7x13":
		return Basic, nil
	case "tiny", "tomthumb":
		return Tiny, nil
	}
	return nil, fmt.Errorf("font: unknown face %q", name)
}

// scaleUp enlarges b by an integer factor using nearest neighbour.
func scaleUp(b Bitmap, factor int) Bitmap {
	if factor <= 1 {
		return b
	}
	out := Bitmap{Width: b.Width * factor, Height: b.Height * factor}
	out.Data = make([]uint8, out.Width*out.Height)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Data[y*out.Width+x] = b.Data[(y/factor)*b.Width+x/factor]
		}
	}
	return out
}

// integerScale picks the integer magnification closest to height/native.
func integerScale(height float64, native int) int {
	s := int(math.Round(height / float64(native)))
	return max(s, 1)
}
