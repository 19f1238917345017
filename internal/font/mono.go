package font

import (
	"image"
	"math"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Mono renders with the Go Mono TrueType font, anti-aliased.
var Mono Rasterizer = &truetype{ttf: gomono.TTF}

type truetype struct {
	ttf []byte

	once  sync.Once
	font  *opentype.Font
	err   error
	mu    sync.Mutex
	faces map[int]xfont.Face
}

func (t *truetype) face(px int) (xfont.Face, bool) {
	t.once.Do(func() {
		t.font, t.err = opentype.Parse(t.ttf)
		t.faces = make(map[int]xfont.Face)
	})
	if t.err != nil {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.faces[px]; ok {
		return f, true
	}
	f, err := opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, false
	}
	t.faces[px] = f
	return f, true
}

func (t *truetype) Rasterize(text string, height float64) (Bitmap, bool) {
	px := int(math.Ceil(height))
	if px <= 0 {
		return Bitmap{}, false
	}
	face, ok := t.face(px)
	if !ok {
		return Bitmap{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	width := xfont.MeasureString(face, text).Ceil()
	if width <= 0 {
		return Bitmap{}, false
	}
	// Scale the ascent so glyphs fit the px-tall box without clipping.
	m := face.Metrics()
	ascent := m.Ascent
	if total := m.Ascent + m.Descent; total > fixed.I(px) && total > 0 {
		ascent = fixed.Int26_6(int64(m.Ascent) * int64(fixed.I(px)) / int64(total))
	}
	dst := image.NewAlpha(image.Rect(0, 0, width, px))
	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: ascent},
	}
	d.DrawString(text)
	return Bitmap{Width: width, Height: px, Data: dst.Pix}, true
}
