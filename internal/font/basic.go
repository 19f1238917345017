package font

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Basic renders with the fixed 7x13 bitmap font, scaled by whole pixels.
var Basic Rasterizer = basic{}

type basic struct{}

func (basic) Rasterize(text string, height float64) (Bitmap, bool) {
	face := basicfont.Face7x13
	width := xfont.MeasureString(face, text).Ceil()
	if width <= 0 {
		return Bitmap{}, false
	}
	dst := image.NewAlpha(image.Rect(0, 0, width, face.Height))
	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)
	b := Bitmap{Width: width, Height: face.Height, Data: dst.Pix}
	return scaleUp(b, integerScale(height, face.Height)), true
}
