package tui

import (
	"fmt"
	"strings"
	"time"

	key "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"heatgrid/internal/export"
	"heatgrid/internal/loader"
	"heatgrid/internal/multimap"
)

// ReloadMsg carries freshly loaded data, or the error that stopped the
// reload. The session keeps its state across reloads.
type ReloadMsg struct {
	Data Data
	Err  error
}

type copyMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case ReloadMsg:
		m.reload(msg)
	case copyMsg:
		m.copyImage()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	}
	m.drainEvents()
	return m, cmd
}

// resize fits the widget and the panels to the terminal.
func (m *Model) resize() {
	l := m.layout()
	m.w.Resize(l.rasterSize())
	m.l.SetSize(sidebarWidth-2, l.rows)
	m.ta.SetWidth(l.mapW)
	m.ta.SetHeight(min(l.rows, 12))
	m.tbl.SetHeight(max(1, min(l.rows-2, 20)))
	m.help.Width = m.width
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.focus {
	case focusPaste:
		switch msg.String() {
		case "esc":
			m.focus = focusMap
			m.ta.Blur()
			m.status = "view mode"
			return nil
		case "enter":
			m.applyPaste()
			return nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return cmd

	case focusSidebar:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelectedDataset()
			return nil
		case key.Matches(msg, m.keys.Sidebar):
			m.showSidebar = false
			m.focus = focusMap
			m.resize()
			return nil
		case key.Matches(msg, m.keys.Back):
			m.focus = focusMap
			return nil
		}
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd

	case focusTable:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Table):
			m.showTable = false
			m.focus = focusMap
			return nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.w.Key(m.s, multimap.KeyUp)
	case key.Matches(msg, m.keys.Down):
		m.w.Key(m.s, multimap.KeyDown)
	case key.Matches(msg, m.keys.Left):
		m.w.Key(m.s, multimap.KeyLeft)
	case key.Matches(msg, m.keys.Right):
		m.w.Key(m.s, multimap.KeyRight)
	case key.Matches(msg, m.keys.ZoomIn):
		m.w.Key(m.s, multimap.KeyZoomIn)
	case key.Matches(msg, m.keys.ZoomOut):
		m.w.Key(m.s, multimap.KeyZoomOut)
	case key.Matches(msg, m.keys.Home):
		m.w.HomeView(m.s)
	case key.Matches(msg, m.keys.Copy):
		m.copyImage()
	case key.Matches(msg, m.keys.CopyLater):
		m.status = fmt.Sprintf("copying in %s", m.opts.CopyDelay)
		return tea.Tick(m.opts.CopyDelay, func(time.Time) tea.Msg { return copyMsg{} })
	case key.Matches(msg, m.keys.Hide):
		if !m.w.HideHovered(m.s) {
			m.status = "nothing to hide"
		}
	case key.Matches(msg, m.keys.ShowAll):
		if !m.s.HasHidden() {
			m.status = "nothing is hidden"
		}
		m.w.ShowAll(m.s)
	case key.Matches(msg, m.keys.Unselect):
		m.w.UnselectAll(m.s)
	case key.Matches(msg, m.keys.CopyWKT):
		wkt := loader.FormatMultiPoint(m.s.Selected())
		if err := export.CopyText(m.opts.Text, wkt); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("copied %d points", len(m.s.Selected()))
		}
	case key.Matches(msg, m.keys.Paste):
		m.focus = focusPaste
		m.ta.SetValue("")
		m.status = "paste mode"
		return m.ta.Focus()
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = true
		m.focus = focusSidebar
		m.resize()
	case key.Matches(msg, m.keys.Table):
		m.showTable = true
		m.focus = focusTable
		m.refreshSelection()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.focus == focusPaste || m.focus == focusTable {
		return nil
	}
	l := m.layout()
	pt := l.pixelAt(msg.X, msg.Y)
	if pt == nil && m.showSidebar && msg.X < sidebarWidth && !m.pressed {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.w.Hover(m.s, pt)
		if m.pressed && m.w.Dragging() {
			if msg.X != m.pressAt.X || msg.Y != m.pressAt.Y {
				m.moved = true
			}
			m.w.DragMove(m.s)
		}

	case tea.MouseActionPress:
		m.w.Hover(m.s, pt)
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.focus = focusMap
			m.pressed, m.moved, m.pressAt = true, false, msg
			m.w.DragStart(m.s)
		case tea.MouseButtonWheelUp:
			m.scroll(wheelNotch, msg.Shift)
		case tea.MouseButtonWheelDown:
			m.scroll(-wheelNotch, msg.Shift)
		case tea.MouseButtonWheelLeft:
			m.w.Key(m.s, multimap.KeyLeft)
		case tea.MouseButtonWheelRight:
			m.w.Key(m.s, multimap.KeyRight)
		}

	case tea.MouseActionRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		m.w.Hover(m.s, pt)
		m.w.DragRelease(m.s)
		if m.moved {
			return nil
		}
		now := m.now()
		if !m.lastClick.IsZero() && now.Sub(m.lastClick) <= doubleClickTime {
			m.lastClick = time.Time{}
			m.w.DoubleClick(m.s)
			return nil
		}
		m.lastClick = now
		m.w.Click(m.s, msg.Ctrl)
	}
	return nil
}

// scroll applies one wheel notch; shift turns it into a horizontal delta.
func (m *Model) scroll(delta float64, shift bool) {
	if shift {
		m.w.Scroll(m.s, delta, 0, true)
		return
	}
	m.w.Scroll(m.s, 0, delta, false)
}

func (m *Model) copyImage() {
	if err := export.Copy(m.w, m.s, m.opts.Images); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied view"
	if fs, ok := m.opts.Images.(*export.FileSink); ok {
		m.status = "saved " + fs.Last()
	}
}

func (m *Model) applyPaste() {
	text := strings.TrimSpace(m.ta.Value())
	if text == "" {
		m.status = "paste: empty"
		return
	}
	pts, err := loader.ParseMultiPoint(text)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	m.s.MakeSelected(pts)
	m.w.Invalidate()
	m.refreshSelection()
	m.focus = focusMap
	m.ta.Blur()
	m.status = fmt.Sprintf("selected %d points", len(pts))
}

func (m *Model) reload(msg ReloadMsg) {
	if msg.Err != nil {
		m.status = "reload failed: " + msg.Err.Error()
		return
	}
	m.w.SetEngine(msg.Data.Engine, m.s)
	m.sources = msg.Data.Sources
	m.refreshDatasets()
	m.refreshSelection()
	m.status = "Reloaded"
}

// drainEvents turns session events into the status line and panel updates.
func (m *Model) drainEvents() {
	for _, ev := range m.s.Events() {
		m.event = ev.Kind.String()
		switch ev.Kind {
		case multimap.EventHide, multimap.EventShow:
			m.event += " " + ev.Key
			m.refreshDatasets()
		case multimap.EventShowAll:
			m.refreshDatasets()
		case multimap.EventSelection, multimap.EventUnselectAll:
			m.refreshSelection()
		}
	}
}
