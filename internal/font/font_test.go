package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inked(b Bitmap) int {
	n := 0
	for _, v := range b.Data {
		if v > 0 {
			n++
		}
	}
	return n
}

func TestFaces(t *testing.T) {
	tests := []struct {
		name   string
		face   Rasterizer
		height float64
	}{
		{"mono", Mono, 18},
		{"mono small", Mono, 9},
		{"basic", Basic, 13},
		{"basic doubled", Basic, 26},
		{"tiny", Tiny, 6},
		{"tiny tripled", Tiny, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := tt.face.Rasterize("+1.25E-03", tt.height)
			require.True(t, ok)
			require.Len(t, b.Data, b.Width*b.Height)
			assert.Positive(t, b.Width)
			assert.Positive(t, inked(b))
			assert.InDelta(t, tt.height, b.Height, tt.height/2+1)
		})
	}
}

func TestTinyKeepsDescenders(t *testing.T) {
	lastRow := func(b Bitmap) int {
		n := 0
		for x := 0; x < b.Width; x++ {
			if v, _ := b.Fetch(x, b.Height-1); v > 0 {
				n++
			}
		}
		return n
	}
	low, ok := Tiny.Rasterize("gpy", 6)
	require.True(t, ok)
	assert.Equal(t, 6, low.Height)
	assert.Positive(t, lastRow(low), "descenders reach the bottom row")

	caps, ok := Tiny.Rasterize("EE", 6)
	require.True(t, ok)
	assert.Zero(t, lastRow(caps), "capitals sit on the baseline above it")
}

func TestLongerTextIsWider(t *testing.T) {
	for _, face := range []Rasterizer{Mono, Basic, Tiny} {
		short, ok := face.Rasterize("1|2", 12)
		require.True(t, ok)
		long, ok := face.Rasterize("10|20", 12)
		require.True(t, ok)
		assert.Greater(t, long.Width, short.Width)
	}
}

func TestOptionsRender(t *testing.T) {
	o := Options{Height: 12}
	_, ok := o.Render("")
	assert.False(t, ok)
	_, ok = o.WithHeight(0).Render("x")
	assert.False(t, ok)
	_, ok = o.WithHeight(-3).Render("x")
	assert.False(t, ok)

	a, ok := o.Render("FP")
	require.True(t, ok, "nil face falls back to mono")
	b, ok := Options{Face: Mono, Height: 12}.Render("FP")
	require.True(t, ok)
	assert.True(t, a.Equal(b))
	c, _ := o.Render("PF")
	assert.False(t, a.Equal(c))
}

func TestBitmapFetch(t *testing.T) {
	b := Bitmap{Width: 2, Height: 2, Data: []uint8{1, 2, 3, 4}}
	v, ok := b.Fetch(1, 1)
	assert.True(t, ok)
	assert.Equal(t, uint8(4), v)
	_, ok = b.Fetch(2, 0)
	assert.False(t, ok)

	big := scaleUp(b, 2)
	assert.Equal(t, 4, big.Width)
	assert.Equal(t, []uint8{1, 1, 2, 2, 1, 1, 2, 2, 3, 3, 4, 4, 3, 3, 4, 4}, big.Data)
	assert.Equal(t, b, scaleUp(b, 1))
}

func TestByName(t *testing.T) {
	for name, want := range map[string]Rasterizer{"": Mono, "Mono": Mono, "basic": Basic, "tiny": Tiny} {
		got, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ByName("comic")
	assert.Error(t, err)
}
