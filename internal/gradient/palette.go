package gradient

import "heatgrid/internal/raster"

// Distinguishable is Kelly's list of mutually distinguishable colors
// (white removed).
var Distinguishable = [...]raster.RGBA{
	raster.RGB(240, 163, 255), // amethyst
	raster.RGB(0, 117, 220),   // blue
	raster.RGB(153, 63, 0),    // caramel
	raster.RGB(76, 0, 92),     // damson
	raster.RGB(25, 25, 25),    // ebony
	raster.RGB(0, 92, 49),     // forest
	raster.RGB(43, 206, 72),   // green
	raster.RGB(255, 204, 153), // honeydew
	raster.RGB(128, 128, 128), // iron
	raster.RGB(148, 255, 181), // jade
	raster.RGB(143, 124, 0),   // khaki
	raster.RGB(157, 204, 0),   // lime
	raster.RGB(194, 0, 136),   // mallow
	raster.RGB(0, 51, 128),    // navy
	raster.RGB(255, 164, 5),   // orpiment
	raster.RGB(255, 168, 187), // pink
	raster.RGB(66, 102, 0),    // quagmire
	raster.RGB(255, 0, 16),    // red
	raster.RGB(94, 241, 242),  // sky
	raster.RGB(0, 153, 143),   // turquoise
	raster.RGB(224, 255, 102), // uranium
	raster.RGB(116, 10, 255),  // violet
	raster.RGB(153, 0, 0),     // wine
	raster.RGB(255, 255, 128), // xanthin
	raster.RGB(255, 225, 0),   // yellow
	raster.RGB(255, 80, 5),    // zinnia
}

// DistinguishableColor returns the i-th palette color, wrapping around.
func DistinguishableColor(i int) raster.RGBA {
	n := len(Distinguishable)
	return Distinguishable[((i%n)+n)%n]
}
