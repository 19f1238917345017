package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"heatgrid/internal/raster"
)

const halfBlock = "▀"

// layout is where the map sits on screen, in terminal cells.
type layout struct {
	mapX, mapY int
	mapW, rows int
}

func (m Model) layout() layout {
	l := layout{mapY: headerHeight}
	l.rows = max(1, m.height-headerHeight-footerHeight)
	l.mapW = max(1, m.width)
	if m.showSidebar {
		l.mapX = sidebarWidth + 1
		l.mapW = max(1, m.width-l.mapX)
	}
	return l
}

// rasterSize is the pixel size of the map: two pixels per cell vertically.
func (l layout) rasterSize() (w, h int) { return l.mapW, l.rows * 2 }

// pixelAt maps a terminal cell to the top pixel it shows, or nil outside
// the map.
func (l layout) pixelAt(x, y int) *image.Point {
	if x < l.mapX || x >= l.mapX+l.mapW || y < l.mapY || y >= l.mapY+l.rows {
		return nil
	}
	return &image.Point{X: x - l.mapX, Y: (y - l.mapY) * 2}
}

// renderHalfBlocks draws buf with one upper half block per terminal cell:
// the foreground is the upper pixel, the background the lower one. Runs of
// equal cells share one style. Output is cropped to cols x rows.
func renderHalfBlocks(buf *raster.Buffer[raster.RGBA], cols, rows int, pad raster.RGBA) string {
	if buf == nil {
		return ""
	}
	pixel := func(x, y int) raster.RGBA {
		if buf.In(x, y) {
			return buf.At(x, y)
		}
		return pad
	}
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		y := row * 2
		runStart := 0
		flush := func(end int) {
			if end <= runStart {
				return
			}
			top, bottom := pixel(runStart, y), pixel(runStart, y+1)
			st := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bottom.Hex()))
			b.WriteString(st.Render(strings.Repeat(halfBlock, end-runStart)))
			runStart = end
		}
		for x := 1; x < cols; x++ {
			if pixel(x, y) != pixel(runStart, y) || pixel(x, y+1) != pixel(runStart, y+1) {
				flush(x)
			}
		}
		flush(cols)
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
