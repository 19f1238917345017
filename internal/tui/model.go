// Package tui shows heatmap grids in the terminal with bubbletea.
package tui

import (
	"time"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"heatgrid/internal/export"
	"heatgrid/internal/loader"
	"heatgrid/internal/multimap"
	"heatgrid/internal/raster"
)

// Engine is the engine type the viewer draws.
type Engine = multimap.Engine[string, raster.RGBA]

// Data is what the viewer shows. Sources, when present, are aligned with
// Engine.Items and provide the numeric values behind the colors.
type Data struct {
	Engine  *Engine
	Sources []loader.Source
}

// Options configure the viewer.
type Options struct {
	Widget multimap.WidgetOptions
	// CopyDelay is the wait of the delayed copy; 0 means 3s.
	CopyDelay time.Duration
	Images    export.Sink
	Text      export.TextSink
	Title     string
}

const (
	headerHeight    = 1
	footerHeight    = 2
	sidebarWidth    = 28
	doubleClickTime = 400 * time.Millisecond
	// wheelNotch is the scroll delta of one mouse wheel step.
	wheelNotch = 50
)

type focus int

const (
	focusMap focus = iota
	focusSidebar
	focusTable
	focusPaste
)

type Model struct {
	width  int
	height int

	w       *multimap.Widget[string, raster.RGBA]
	s       *multimap.Session[string]
	sources []loader.Source

	opts   Options
	status string
	event  string
	now    func() time.Time

	focus       focus
	showSidebar bool
	showTable   bool

	// pointer
	pressed   bool
	moved     bool
	pressAt   tea.MouseMsg
	lastClick time.Time

	keys keyMap
	help help.Model

	// dataset sidebar
	l list.Model
	// selection table
	tbl table.Model
	// paste box for a WKT selection
	ta textarea.Model
}

func New(data Data, opts Options) Model {
	if opts.CopyDelay <= 0 {
		opts.CopyDelay = 3 * time.Second
	}
	if opts.Text == nil {
		opts.Text = export.SystemClipboard{}
	}
	if opts.Title == "" {
		opts.Title = "heatgrid"
	}
	m := Model{
		w:      multimap.NewWidget(data.Engine, opts.Widget),
		opts:   opts,
		status: "ready",
		now:    time.Now,
		keys:   defaultKeys(),
		help:   help.New(),
	}
	m.s = m.w.NewSession()
	m.sources = data.Sources

	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, sidebarWidth-2, 10)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a WKT MULTIPOINT to select it. Enter applies; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.refreshDatasets()
	m.refreshSelection()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Widget exposes the widget, for headless use and tests.
func (m Model) Widget() *multimap.Widget[string, raster.RGBA] { return m.w }

// Session exposes the viewer's session.
func (m Model) Session() *multimap.Session[string] { return m.s }

// Status returns the current status line text.
func (m Model) Status() string { return m.status }
