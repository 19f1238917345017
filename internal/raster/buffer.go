package raster

import "image"

// Buffer is a row-major grid of pixels.
type Buffer[P any] struct {
	Width  int
	Height int
	Pix    []P
}

// NewBuffer returns a width x height buffer filled with fill.
// Negative sizes are treated as zero.
func NewBuffer[P any](width, height int, fill P) *Buffer[P] {
	width, height = max(width, 0), max(height, 0)
	b := &Buffer[P]{Width: width, Height: height, Pix: make([]P, width*height)}
	b.Fill(fill)
	return b
}

// Fill sets every pixel to p.
func (b *Buffer[P]) Fill(p P) {
	for i := range b.Pix {
		b.Pix[i] = p
	}
}

// In reports whether (x, y) lies on the buffer.
func (b *Buffer[P]) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// At returns the pixel at (x, y). It panics off-buffer like a slice index.
func (b *Buffer[P]) At(x, y int) P { return b.Pix[y*b.Width+x] }

// Set writes p at (x, y); writes off the buffer are dropped.
func (b *Buffer[P]) Set(x, y int, p P) {
	if b.In(x, y) {
		b.Pix[y*b.Width+x] = p
	}
}

// Row returns the pixels of row y.
func (b *Buffer[P]) Row(y int) []P { return b.Pix[y*b.Width : (y+1)*b.Width] }

// Bounds returns the buffer rectangle.
func (b *Buffer[P]) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }

// ToImage copies an RGBA buffer into an image.NRGBA.
func ToImage(b *Buffer[RGBA]) *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x, c := range b.Row(y) {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}
