package tui

import (
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatgrid/internal/font"
	"heatgrid/internal/geom"
	"heatgrid/internal/gradient"
	"heatgrid/internal/loader"
	"heatgrid/internal/multimap"
	"heatgrid/internal/raster"
)

type imageSink struct {
	got []image.Rectangle
	err error
}

func (s *imageSink) WriteImage(img image.Image) error {
	if s.err != nil {
		return s.err
	}
	s.got = append(s.got, img.Bounds())
	return nil
}

type textSink struct{ got []string }

func (s *textSink) WriteText(text string) error {
	s.got = append(s.got, text)
	return nil
}

func testData(keys ...string) Data {
	srcs := make([]loader.Source, len(keys))
	for i, k := range keys {
		srcs[i] = loader.Source{Key: k, Title: k, Anchor: geom.Point{X: 10 * i}, Heatmap: *multimap.ExampleCircle(10, 10)}
	}
	g := gradient.New(gradient.Options{Mode: gradient.Linear, Start: raster.Blue, End: raster.Red, Steps: 16})
	items := loader.Items(srcs, loader.Style{
		Gradient:   g,
		Background: raster.Black,
		Font:       font.Options{Face: font.Tiny, Height: 6, Transparent: true},
	})
	settings := multimap.Settings[raster.RGBA]{
		Background: raster.Black,
		Selected:   raster.White,
		Sentinel:   raster.Gold,
	}
	return Data{Engine: multimap.NewEngine(items, settings), Sources: srcs}
}

// newTestModel shows one 10x10 dataset on a 20x20 raster: the terminal is
// 20 columns and 10 body rows, so cell (x, y) shows point (x/2, y-1).
func newTestModel(t *testing.T, keys ...string) (Model, *imageSink, *textSink) {
	t.Helper()
	if len(keys) == 0 {
		keys = []string{"a"}
	}
	images, text := &imageSink{}, &textSink{}
	m := New(testData(keys...), Options{Images: images, Text: text})
	m = send(m, tea.WindowSizeMsg{Width: 20, Height: 10 + headerHeight + footerHeight})
	m.View()
	return m, images, text
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func click(x, y int) []tea.Msg {
	return []tea.Msg{
		mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(x, y, tea.MouseActionRelease, tea.MouseButtonLeft),
	}
}

func shown(t *testing.T, m Model) geom.Rect {
	t.Helper()
	r, ok := m.Session().CurrentlyShowing()
	require.True(t, ok)
	return r
}

func TestResizeAndView(t *testing.T) {
	m, _, _ := newTestModel(t)
	w, h := m.Widget().Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)

	view := m.View()
	assert.Contains(t, view, "heatgrid")
	assert.Contains(t, view, halfBlock)
	assert.Nil(t, m.Session().RenderProblem())
	assert.Equal(t, geom.RectAt(geom.Point{}, geom.Offset{DX: 10, DY: 10}), shown(t, m))

	assert.Empty(t, New(testData("a"), Options{}).View(), "nothing before the first size")
}

func TestLayoutPixelAt(t *testing.T) {
	l := layout{mapX: 29, mapY: 1, mapW: 20, rows: 10}
	assert.Nil(t, l.pixelAt(28, 5))
	assert.Nil(t, l.pixelAt(30, 0))
	assert.Nil(t, l.pixelAt(30, 11))
	assert.Equal(t, &image.Point{X: 1, Y: 8}, l.pixelAt(30, 5))
	w, h := l.rasterSize()
	assert.Equal(t, []int{20, 20}, []int{w, h})
}

func TestRenderHalfBlocks(t *testing.T) {
	buf := raster.NewBuffer(3, 3, raster.Black)
	buf.Set(1, 0, raster.White)
	out := renderHalfBlocks(buf, 4, 2, raster.Red)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 4, strings.Count(l, halfBlock))
	}
	assert.Empty(t, renderHalfBlocks(nil, 4, 2, raster.Red))
}

func TestHoverAndClick(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(m, mouse(5, 4, tea.MouseActionMotion, tea.MouseButtonNone))
	hover := m.Session().Hover()
	assert.Equal(t, multimap.Pixel, hover.Kind)
	assert.Equal(t, "a", hover.Key)
	assert.Equal(t, geom.Point{X: 2, Y: 3}, hover.Point)
	regime, err := m.Widget().Regime(m.Session())
	require.NoError(t, err)
	assert.Equal(t, "a at 2|3  "+regime.String(), m.hoverLine())

	m = send(m, click(5, 4)...)
	assert.Equal(t, []geom.Point{{X: 2, Y: 3}}, m.Session().Selected())
	assert.Equal(t, "selection", m.event)

	rows := m.tbl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0][0])
	assert.Equal(t, "3", rows[0][1])
	assert.True(t, strings.HasPrefix(rows[0][2], "+"), "numeric value in scientific notation, got %q", rows[0][2])

	m = send(m, mouse(30, 4, tea.MouseActionMotion, tea.MouseButtonNone))
	assert.Equal(t, multimap.NotHovering, m.Session().Hover().Kind)
}

func TestCtrlClickAddsToSelection(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.now = func() time.Time { return time.Time{}.Add(time.Hour) }
	m = send(m, click(5, 4)...)

	m.now = func() time.Time { return time.Time{}.Add(2 * time.Hour) }
	press := mouse(9, 6, tea.MouseActionPress, tea.MouseButtonLeft)
	release := mouse(9, 6, tea.MouseActionRelease, tea.MouseButtonLeft)
	release.Ctrl = true
	m = send(m, press, release)
	assert.ElementsMatch(t, []geom.Point{{X: 2, Y: 3}, {X: 4, Y: 5}}, m.Session().Selected())
}

func TestDoubleClickCenters(t *testing.T) {
	m, _, _ := newTestModel(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	m = send(m, click(5, 4)...)
	m.now = func() time.Time { return base.Add(150 * time.Millisecond) }
	m = send(m, click(5, 4)...)

	assert.Equal(t, geom.Rect{LeftTop: geom.Point{X: -3, Y: -2}, RightBottom: geom.Point{X: 7, Y: 8}}, shown(t, m))
	assert.Equal(t, "show-rectangle", m.event)
}

func TestDragZooms(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(m,
		mouse(0, 1, tea.MouseActionMotion, tea.MouseButtonNone),
		mouse(0, 1, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(6, 4, tea.MouseActionMotion, tea.MouseButtonLeft),
		mouse(13, 8, tea.MouseActionMotion, tea.MouseButtonLeft),
	)
	assert.True(t, m.Widget().Dragging())

	m = send(m, mouse(13, 8, tea.MouseActionRelease, tea.MouseButtonLeft))
	assert.False(t, m.Widget().Dragging())
	assert.Equal(t, geom.Rect{RightBottom: geom.Point{X: 7, Y: 8}}, shown(t, m))
	assert.Empty(t, m.Session().Selected(), "a drag is not a click")
}

func TestWheelZoomsAtPointer(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(m, mouse(10, 6, tea.MouseActionPress, tea.MouseButtonWheelUp))
	r := shown(t, m)
	assert.Equal(t, 8, r.Size().DX)
	assert.Equal(t, 8, r.Size().DY)

	m = send(m, mouse(10, 6, tea.MouseActionPress, tea.MouseButtonWheelDown))
	assert.Equal(t, 10, shown(t, m).Size().DX)

	before := shown(t, m)
	m = send(m, mouse(10, 6, tea.MouseActionPress, tea.MouseButtonWheelRight))
	assert.Equal(t, before.Translate(geom.Offset{DX: 1}), shown(t, m))
}

func TestKeys(t *testing.T) {
	m, _, _ := newTestModel(t)
	home := shown(t, m)

	m = send(m, runes("+"))
	assert.Equal(t, 8, shown(t, m).Size().DX)
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, shown(t, m).LeftTop.X)
	m = send(m, runes("0"))
	assert.Equal(t, home, shown(t, m))

	m = send(m, tea.WindowSizeMsg{Width: 200, Height: 40}, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "copy in 3s")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCopy(t *testing.T) {
	m, images, _ := newTestModel(t)
	m = send(m, runes("c"))
	assert.Equal(t, []image.Rectangle{image.Rect(0, 0, 20, 20)}, images.got)
	assert.Equal(t, "copied view", m.Status())

	next, cmd := m.Update(runes("C"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.Status(), "3s")
	m = send(m, copyMsg{})
	assert.Len(t, images.got, 2)

	images.err = errors.New("no display")
	m = send(m, runes("c"))
	assert.Contains(t, m.Status(), "no display")
	require.NotNil(t, m.Session().RenderProblem())
	assert.Equal(t, multimap.ProblemClipboardIssue, m.Session().RenderProblem().Kind)
	assert.Contains(t, m.statusLine(), "problem")
}

func TestSelectionWKT(t *testing.T) {
	m, _, text := newTestModel(t)
	m = send(m, runes("p"))
	assert.Equal(t, focusPaste, m.focus)
	m = send(m, runes("MULTIPOINT (1 2, 3 4)"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusMap, m.focus)
	assert.ElementsMatch(t, []geom.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, m.Session().Selected())
	assert.Len(t, m.tbl.Rows(), 2)

	m = send(m, runes("w"))
	assert.Equal(t, []string{"MULTIPOINT (1 2, 3 4)"}, text.got)

	m = send(m, runes("u"))
	assert.Empty(t, m.Session().Selected())
	assert.Equal(t, "unselect-all", m.event)
	assert.Empty(t, m.tbl.Rows())

	m = send(m, runes("p"), runes("LINESTRING (0 0, 1 1)"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusPaste, m.focus, "a bad paste keeps the box open")
	assert.Contains(t, m.Status(), "wkt error")
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusMap, m.focus)
}

func TestSidebarToggles(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b")
	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 13})
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.showSidebar)
	assert.Equal(t, focusSidebar, m.focus)
	w, _ := m.Widget().Size()
	assert.Equal(t, 60-sidebarWidth-1, w)
	assert.Len(t, m.l.Items(), 2)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Session().State.IsVisible("a"))
	assert.Equal(t, "hide a", m.event)
	assert.Equal(t, "○ a", m.l.Items()[0].(datasetItem).Title())

	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Session().State.IsVisible("b"), "the last visible dataset stays")
	assert.Contains(t, m.Status(), "cannot be hidden")

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusMap, m.focus)
	m = send(m, runes("a"))
	assert.True(t, m.Session().State.IsVisible("a"))
	assert.Equal(t, "show-all", m.event)
}

func TestHideHovered(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(m, mouse(5, 4, tea.MouseActionMotion, tea.MouseButtonNone), runes("x"))
	assert.Equal(t, "nothing to hide", m.Status(), "one dataset cannot be hidden")
}

func TestSelectionTable(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 20}, runes("s"))
	assert.True(t, m.showTable)
	assert.Contains(t, m.View(), "nothing selected")
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showTable)
}

func TestReloadKeepsSession(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(m, click(5, 4)...)

	m = send(m, ReloadMsg{Err: errors.New("bad csv")})
	assert.Equal(t, "reload failed: bad csv", m.Status())

	m = send(m, ReloadMsg{Data: testData("a", "b")})
	assert.Equal(t, "Reloaded", m.Status())
	assert.Len(t, m.Widget().Engine().Items, 2)
	assert.Len(t, m.l.Items(), 2)
	assert.Equal(t, []geom.Point{{X: 2, Y: 3}}, m.Session().Selected())
	assert.Len(t, m.tbl.Columns(), 4)
}
