// Package raster holds the pixel types the heatmap engine draws with.
package raster

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Drawable is the small capability set the rasterizer needs from a pixel.
// Any value type implementing it can be rendered, which lets geometry be
// tested against stand-ins such as runes.
type Drawable[P any] interface {
	// Darken blends the pixel toward black; factor 1 keeps it unchanged.
	Darken(factor float32) P
	// AddIntensity adds v to every color channel, saturating at 255.
	AddIntensity(v uint8) P
	// Opaque drops any transparency.
	Opaque() P
	// Gray returns a gray pixel of the given intensity.
	Gray(v uint8) P
}

// RGBA is a straight-alpha 8-bit display color.
type RGBA struct {
	R, G, B, A uint8
}

var _ Drawable[RGBA] = RGBA{}

// RGB returns an opaque color.
func RGB(r, g, b uint8) RGBA { return RGBA{R: r, G: g, B: b, A: 0xff} }

// Common colors.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(0xff, 0xff, 0xff)
	Gray      = RGB(0xa0, 0xa0, 0xa0)
	DarkGray  = RGB(0x60, 0x60, 0x60)
	Red       = RGB(0xff, 0, 0)
	DarkGreen = RGB(0, 0x64, 0)
	Blue      = RGB(0, 0, 0xff)
	Gold      = RGB(0xff, 0xd7, 0)
)

func (c RGBA) Darken(factor float32) RGBA {
	scale := func(v uint8) uint8 {
		f := float32(v)*factor + 0.5
		switch {
		case f <= 0:
			return 0
		case f >= 255:
			return 255
		}
		return uint8(f)
	}
	return RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

func (c RGBA) AddIntensity(v uint8) RGBA {
	add := func(a uint8) uint8 {
		if s := int(a) + int(v); s < 0xff {
			return uint8(s)
		}
		return 0xff
	}
	return RGB(add(c.R), add(c.G), add(c.B))
}

func (c RGBA) Opaque() RGBA { return RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

func (RGBA) Gray(v uint8) RGBA { return RGB(v, v, v) }

// NRGBA converts to the standard library's straight-alpha color.
func (c RGBA) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) { return c.NRGBA().RGBA() }

// Hex formats the color as #rrggbb.
func (c RGBA) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// FromColorful converts a go-colorful color, clamping it into gamut.
func FromColorful(c colorful.Color) RGBA {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (RGBA, error) {
	c, err := colorful.Hex(expandShortHex(s))
	if err != nil {
		return RGBA{}, err
	}
	return FromColorful(c), nil
}

func expandShortHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}
