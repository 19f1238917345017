package gradient

import (
	"fmt"

	"heatgrid/internal/raster"
)

// Mode selects how control colors are combined.
type Mode int

const (
	// Linear runs from Start to End.
	Linear Mode = iota
	// ThroughCenter runs from Start to Center and on to End.
	ThroughCenter
)

// ParseMode maps "linear" and "center" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "linear":
		return Linear, nil
	case "center", "through-center":
		return ThroughCenter, nil
	}
	return Linear, fmt.Errorf("gradient: unknown mode %q", s)
}

// Options describes a gradient to build.
type Options struct {
	Mode   Mode
	Start  raster.RGBA
	Center raster.RGBA
	End    raster.RGBA
	Steps  int
}

// New builds the gradient described by opts.
func New(opts Options) Gradient[raster.RGBA] {
	if opts.Mode == Linear {
		return between(opts.Start, opts.End, opts.Steps)
	}
	switch n := opts.Steps; {
	case n <= 0:
		return Gradient[raster.RGBA]{}
	case n == 1:
		return Gradient[raster.RGBA]{opts.Center}
	case n == 2:
		return Gradient[raster.RGBA]{opts.Start, opts.End}
	case n == 3:
		return Gradient[raster.RGBA]{opts.Start, opts.Center, opts.End}
	case n%2 == 0:
		// n samples per half, keeping every other one; the first half keeps
		// even indices (dropping the center), the second half odd ones.
		first := between(opts.Start, opts.Center, n)
		second := between(opts.Center, opts.End, n)
		out := make(Gradient[raster.RGBA], 0, n)
		for i := 0; i < n; i += 2 {
			out = append(out, first[i])
		}
		for i := 1; i < n; i += 2 {
			out = append(out, second[i])
		}
		return out
	default:
		half := (n + 1) / 2
		first := between(opts.Start, opts.Center, half)
		second := between(opts.Center, opts.End, half)
		return append(first[:half-1], second...)
	}
}

func between(start, end raster.RGBA, steps int) Gradient[raster.RGBA] {
	a, b := ToOklab(start), ToOklab(end)
	switch {
	case steps <= 0:
		return Gradient[raster.RGBA]{}
	case steps == 1:
		return Gradient[raster.RGBA]{lerp(a, b, 2, 1).RGBA()}
	}
	out := make(Gradient[raster.RGBA], steps)
	for i := range out {
		out[i] = lerp(a, b, float64(steps-1), float64(i)).RGBA()
	}
	return out
}
