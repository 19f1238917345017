package multimap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatgrid/internal/font"
	"heatgrid/internal/geom"
	"heatgrid/internal/raster"
)

func TestRenderFourDatasets(t *testing.T) {
	e := NewEngine(fourSquares(), glyphSettings())
	st := e.DefaultState()

	buf, err := e.Render(66, 23, st, nil)
	require.NoError(t, err)
	require.Len(t, buf.Pix, 66*23)

	shown, ok := st.ShownRect()
	require.True(t, ok)
	assert.Equal(t, geom.Rect{RightBottom: geom.Point{X: 6, Y: 6}}, shown)

	got := lines(buf)
	want := map[int]string{
		0:  ".00001111222233334444........--.....00001111222233334444....--cccc",
		1:  ".55556666777788889999........--.....55556666777788889999....--cccc",
		4:  ".00001111222233334444........--.....00001111222233334444....--cccc",
		5:  ".............................--.............................--cccc",
		10: "--------------------------------------------------------------bbbb",
		12: ".............................--.............................--bbbb",
		13: ".00001111222233334444........--.....00001111222233334444....--bbbb",
		22: "............................................................--aaaa",
	}
	for row, line := range want {
		assert.Equal(t, line, got[row], "row %d", row)
	}
}

func TestRenderWithExampleOverlays(t *testing.T) {
	items := fourSquares()
	for _, it := range items {
		it.Data.Overlay = ExampleOverlay(geom.Point{X: 1, Y: 1}, "Example Title")
	}
	e := NewEngine(items, glyphSettings())
	st := e.DefaultState()
	for _, size := range [][2]int{{66, 23}, {6, 23}, {7, 1}, {200, 120}, {6, 0}} {
		buf, err := e.Render(size[0], size[1], st, nil)
		require.NoError(t, err, "size %v", size)
		assert.Len(t, buf.Pix, size[0]*size[1])
	}
}

func TestRenderProblems(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		e := NewEngine[int, glyph](nil, glyphSettings())
		buf, err := e.Render(10, 4, e.DefaultState(), nil)
		assert.ErrorIs(t, err, ErrNoData)
		assert.Equal(t, strings.Repeat("?", 40), strings.Join(lines(buf), ""))
	})
	t.Run("all hidden", func(t *testing.T) {
		e := NewEngine(fourSquares(), glyphSettings())
		st := e.DefaultState()
		for _, k := range e.Keys() {
			st.Visible[k] = false
		}
		buf, err := e.Render(66, 23, st, nil)
		assert.ErrorIs(t, err, ErrCountIsZero)
		require.Len(t, buf.Pix, 66*23)
		for _, p := range buf.Pix {
			require.Equal(t, glyph('?'), p)
		}
	})
	t.Run("narrow", func(t *testing.T) {
		e := NewEngine(fourSquares(), glyphSettings())
		buf, err := e.Render(5, 23, e.DefaultState(), nil)
		assert.ErrorIs(t, err, ErrWidthSmallerThanColorBar)
		assert.Len(t, buf.Pix, 5*23)
	})
	t.Run("exactly the colorbar", func(t *testing.T) {
		e := NewEngine(fourSquares(), glyphSettings())
		_, err := e.Render(6, 23, e.DefaultState(), nil)
		assert.NoError(t, err)
	})
}

func TestRenderProblemIs(t *testing.T) {
	err := error(NewClipboardIssue("no xclip"))
	assert.ErrorIs(t, err, &RenderProblem{Kind: ProblemClipboardIssue})
	assert.NotErrorIs(t, err, ErrNoData)
	assert.Equal(t, "clipboard issue: no xclip", err.Error())
	assert.Equal(t, "no data", ErrNoData.Error())
}

func TestRenderSubSampleHasNoBoundary(t *testing.T) {
	s := plain()
	s.BoundaryFactorMin = 0
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: digits(100, 80, geom.Point{})}}, s)
	st := e.DefaultState()
	st.Selected[geom.Point{X: 3, Y: 3}] = struct{}{}

	buf, err := e.Render(40, 30, st, nil)
	require.NoError(t, err)
	regime, err := e.Regime(40, 30, st)
	require.NoError(t, err)
	assert.Equal(t, SubSample, regime)
	for _, p := range buf.Pix {
		require.NotContains(t, []glyph{'r', 'w', '.'}, p)
	}
}

func TestRenderBoundaries(t *testing.T) {
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: digits(2, 2, geom.Point{})}}, plain())
	st := e.DefaultState()
	st.Select(geom.Point{X: 1, Y: 1}, false)

	buf, err := e.Render(20, 20, st, nil)
	require.NoError(t, err)
	assert.Equal(t, glyph('r'), buf.At(0, 0))
	assert.Equal(t, glyph('r'), buf.At(9, 5))
	assert.Equal(t, glyph('0'), buf.At(5, 5))
	assert.Equal(t, glyph('1'), buf.At(15, 5))
	assert.Equal(t, glyph('w'), buf.At(10, 10))
	assert.Equal(t, glyph('w'), buf.At(19, 15))
	assert.Equal(t, glyph('3'), buf.At(15, 15))

	// Outlines vanish once a point is not wider than the factor allows.
	s := plain()
	s.BoundaryFactorMin = 10
	e = NewEngine(e.Items, s)
	buf, err = e.Render(20, 20, st, nil)
	require.NoError(t, err)
	assert.Equal(t, glyph('0'), buf.At(0, 0))
}

func TestRenderMixedRegime(t *testing.T) {
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: digits(2, 100, geom.Point{})}}, plain())
	st := e.DefaultState()
	buf, err := e.Render(20, 20, st, nil)
	require.NoError(t, err)

	regime, err := e.Regime(20, 20, st)
	require.NoError(t, err)
	assert.Equal(t, MagnifiedX, regime)
	assert.Equal(t, glyph('r'), buf.At(0, 0))
	assert.Equal(t, glyph('0'), buf.At(5, 0))
	assert.Equal(t, glyph('1'), buf.At(15, 0))
	// Row 1 maps to data row 5: (5*2)%10.
	assert.Equal(t, glyph('0'), buf.At(5, 1))
}

func TestRenderMargins(t *testing.T) {
	// 3 points on 20 pixels: blocks of 6 and a margin of one pixel on
	// the left, the remainder on the right.
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: digits(3, 3, geom.Point{})}}, plain())
	st := e.DefaultState()
	e.Settings.BoundaryFactorMin = 100
	buf, err := e.Render(20, 20, st, nil)
	require.NoError(t, err)
	assert.Equal(t, "."+strings.Repeat("0", 6)+strings.Repeat("1", 6)+strings.Repeat("2", 6)+".", lines(buf)[1])
	assert.Equal(t, strings.Repeat(".", 20), lines(buf)[0])
}

func TestRenderDragDarkens(t *testing.T) {
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: digits(2, 2, geom.Point{})}}, plain())
	st := e.DefaultState()
	var d Drag
	d.Start(geom.Point{})
	buf, err := e.Render(20, 20, st, &d)
	require.NoError(t, err)
	assert.Equal(t, glyph('#'), buf.At(5, 5))
	assert.Equal(t, glyph('1'), buf.At(15, 5))
}

func TestRenderText(t *testing.T) {
	face := boxFace{divisor: 1}
	d := digits(2, 2, geom.Point{})
	var ok bool
	d.Overlay, ok = NewOverlay(font.Options{Face: face, Transparent: true, Height: 10}, false,
		map[geom.Point]string{{X: 1, Y: 1}: "x"}, "ab")
	require.True(t, ok)

	s := plain()
	s.BoundaryFactorMin = 100
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: d}}, s)
	buf, err := e.Render(20, 20, e.DefaultState(), nil)
	require.NoError(t, err)

	assert.Equal(t, "000000000**111111111", lines(buf)[0], "title")
	assert.Equal(t, glyph('*'), buf.At(14, 14), "point label")
	assert.Equal(t, glyph('3'), buf.At(13, 14))
}

func TestRenderCorners(t *testing.T) {
	d := digits(2, 2, geom.Point{})
	d.Overlay, _ = NewOverlay(font.Options{Face: boxFace{divisor: 1}, Height: 10}, true, nil, "")
	s := plain()
	s.BoundaryFactorMin = 100
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: d}}, s)
	buf, err := e.Render(20, 20, e.DefaultState(), nil)
	require.NoError(t, err)

	rows := lines(buf)
	assert.Equal(t, "***00000001111111***", rows[0])
	assert.Equal(t, "***22222223333333***", rows[19])
	assert.Equal(t, "00000000001111111111", rows[1])
}

func TestRenderColorbarLabels(t *testing.T) {
	d := digits(2, 2, geom.Point{})
	d.Overlay, _ = NewOverlay(font.Options{Face: boxFace{divisor: 4}, Height: 10}, false, nil, "")
	s := glyphSettings()
	s.Colorbar.LabelCount = 2
	e := NewEngine([]Item[int, glyph]{{Key: 0, Data: d}}, s)
	buf, err := e.Render(24, 20, e.DefaultState(), nil)
	require.NoError(t, err)

	rows := lines(buf)
	// "+1.0000E+00" is 11 runes, so the box is 2 wide; top and bottom.
	assert.Equal(t, "cc**", rows[0][20:])
	assert.Equal(t, "aa**", rows[19][20:])
	assert.Equal(t, "cccc", rows[1][20:])
}

func TestFormatScientific(t *testing.T) {
	assert.Equal(t, "+1.0000E+00", FormatScientific(1, 4))
	assert.Equal(t, "+5.0000E-01", FormatScientific(0.5, 4))
	assert.Equal(t, "+1.2E+03", FormatScientific(1234.5, 1))
	assert.Equal(t, "-2.50E-03", FormatScientific(-0.0025, 2))
	assert.Equal(t, "+0.0000E+00", FormatScientific(0, 4))
}

func TestBlitOpaqueAndClip(t *testing.T) {
	buf := raster.NewBuffer[glyph](4, 2, 'x')
	bmp := font.Bitmap{Width: 3, Height: 1, Data: []uint8{0, 9, 0}}
	blit(buf, bmp, 2, 0, buf.Bounds(), false, glyph('.'))
	assert.Equal(t, []string{"xx.*", "xxxx"}, lines(buf))

	blit(buf, bmp, 0, 1, buf.Bounds(), true, glyph('.'))
	assert.Equal(t, []string{"xx.*", "x*xx"}, lines(buf))
}
