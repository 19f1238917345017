package gradient

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"heatgrid/internal/raster"
)

// Oklab is a color in Björn Ottosson's perceptual Oklab space.
type Oklab struct {
	L, A, B float64
}

// ToOklab converts a display color.
func ToOklab(c raster.RGBA) Oklab {
	r, g, b := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.LinearRgb()
	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)
	return Oklab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// RGBA converts back to an opaque display color, clamping into gamut.
func (o Oklab) RGBA() raster.RGBA {
	l := o.L + 0.3963377774*o.A + 0.2158037573*o.B
	m := o.L - 0.1055613458*o.A - 0.0638541728*o.B
	s := o.L - 0.0894841775*o.A - 1.2914855480*o.B
	l, m, s = l*l*l, m*m*m, s*s*s
	return raster.FromColorful(colorful.LinearRgb(
		+4.0767416621*l-3.3077115913*m+0.2309699292*s,
		-1.2684380046*l+2.6097574011*m-0.3413193965*s,
		-0.0041960863*l-0.7034186147*m+1.7076147010*s,
	))
}

// lerp interpolates channel-wise; i runs from 0 to n.
func lerp(start, end Oklab, n, i float64) Oklab {
	ch := func(a, b float64) float64 { return a + (b-a)*i/n }
	return Oklab{L: ch(start.L, end.L), A: ch(start.A, end.A), B: ch(start.B, end.B)}
}
