package font

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Tiny renders with the 3x5 TomThumb bitmap font, scaled by whole pixels.
// It stays legible down to six pixels.
var Tiny Rasterizer = tiny{font: &tinyfont.TomThumb}

type tiny struct {
	font tinyfont.Fonter
}

// coverage collects tinyfont pixels into a Bitmap.
type coverage struct {
	b Bitmap
}

var _ drivers.Displayer = (*coverage)(nil)

func (c *coverage) Size() (x, y int16) { return int16(c.b.Width), int16(c.b.Height) }

func (c *coverage) SetPixel(x, y int16, col color.RGBA) {
	if int(x) < 0 || int(y) < 0 || int(x) >= c.b.Width || int(y) >= c.b.Height {
		return
	}
	c.b.Data[int(y)*c.b.Width+int(x)] = col.A
}

func (c *coverage) Display() error { return nil }

func (t tiny) Rasterize(text string, height float64) (Bitmap, bool) {
	_, outbox := tinyfont.LineWidth(t.font, text)
	lineHeight := int(t.font.GetYAdvance())
	if outbox == 0 || lineHeight == 0 {
		return Bitmap{}, false
	}
	c := &coverage{b: Bitmap{Width: int(outbox), Height: lineHeight}}
	c.b.Data = make([]uint8, c.b.Width*c.b.Height)
	tinyfont.WriteLine(c, t.font, 0, int16(lineHeight-1), text, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return scaleUp(c.b, integerScale(height, lineHeight)), true
}
