package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"heatgrid/internal/raster"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()
	contentWidth := m.width

	// Header
	header := titleStyle.Render(fmt.Sprintf(" %s ─ %d datasets ", m.opts.Title, len(m.w.Engine().Items)))
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header)

	// Map area
	var mapView string
	switch {
	case m.focus == focusPaste:
		mapView = m.ta.View()
	case m.showTable:
		box := boxStyle.Render(titleStyle.Render("Selection") + "\n" + m.tableView())
		mapView = lipgloss.Place(l.mapW, l.rows, lipgloss.Center, lipgloss.Center, box)
	case m.help.ShowAll:
		box := boxStyle.Render(m.help.View(m.keys))
		mapView = lipgloss.Place(l.mapW, l.rows, lipgloss.Center, lipgloss.Center, box)
	default:
		frame := m.w.Frame(m.s)
		mapView = renderHalfBlocks(frame, l.mapW, l.rows, m.background())
	}
	mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.rows).MaxHeight(l.rows).Render(mapView)

	body := mapView
	if m.showSidebar {
		sidebarStyle := lipgloss.NewStyle().Width(sidebarWidth).Height(l.rows).MaxHeight(l.rows)
		if m.focus == focusSidebar {
			sidebarStyle = sidebarStyle.Foreground(baseFg)
		} else {
			sidebarStyle = sidebarStyle.Foreground(baseDimFg)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.l.View()), " ", mapView)
	}

	// Footer: status line with the hover position, then help
	status := dimStyle.Render(" " + m.statusLine() + " ")
	hover := dimStyle.Render(" " + m.hoverLine() + " ")
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(hover))
	line := lipgloss.JoinHorizontal(lipgloss.Bottom, status, lipgloss.NewStyle().Width(spacerW).Render(""), hover)
	helpLine := m.help.ShortHelpView(m.keys.ShortHelp())
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(contentWidth).MaxWidth(contentWidth).Render(line),
		lipgloss.NewStyle().Width(contentWidth).MaxWidth(contentWidth).Render(helpLine),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).MaxHeight(m.height).Render(ui)
}

// statusLine joins the status, the last event and the render problem.
func (m Model) statusLine() string {
	s := m.status
	if m.event != "" {
		s += "  [" + m.event + "]"
	}
	if p := m.s.RenderProblem(); p != nil {
		s += "  " + problemStyle.Render("problem: "+p.Error())
	}
	return s
}

// hoverLine is the hovered position and the sampling regime of the view.
func (m Model) hoverLine() string {
	s := m.s.Hover().String()
	if r, err := m.w.Regime(m.s); err == nil {
		s += "  " + r.String()
	}
	return s
}

func (m Model) tableView() string {
	if len(m.tbl.Rows()) == 0 {
		return dimStyle.Render("nothing selected")
	}
	return m.tbl.View()
}

// background is the pad color around a fixed-size raster.
func (m Model) background() raster.RGBA {
	return m.w.Engine().Settings.Background
}
