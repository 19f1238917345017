package tui

import (
	"fmt"
	"path/filepath"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"heatgrid/internal/gradient"
)

type datasetItem struct {
	key     string
	path    string
	visible bool
	// color marks the dataset in the list only.
	color string
}

func (d datasetItem) Title() string {
	if !d.visible {
		return "○ " + d.key
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(d.color)).Render("●") + " " + d.key
}

func (d datasetItem) Description() string {
	if d.path == "" {
		return "built in"
	}
	return filepath.Base(d.path)
}

func (d datasetItem) FilterValue() string { return d.key }

// refreshDatasets rebuilds the sidebar from the engine, keeping the cursor.
func (m *Model) refreshDatasets() {
	keys := m.w.Engine().Keys()
	items := make([]list.Item, len(keys))
	for i, k := range keys {
		it := datasetItem{
			key:     k,
			visible: m.s.State.IsVisible(k),
			color:   gradient.DistinguishableColor(i).Hex(),
		}
		if i < len(m.sources) {
			it.path = m.sources[i].Path
		}
		items[i] = it
	}
	idx := m.l.Index()
	m.l.SetItems(items)
	if idx < len(items) {
		m.l.Select(idx)
	}
}

// toggleSelectedDataset flips the visibility of the dataset under the
// sidebar cursor.
func (m *Model) toggleSelectedDataset() {
	it, ok := m.l.SelectedItem().(datasetItem)
	if !ok {
		return
	}
	if !m.w.Toggle(m.s, it.key) {
		m.status = "the last visible dataset cannot be hidden"
		return
	}
	state := "hidden"
	if m.s.State.IsVisible(it.key) {
		state = "shown"
	}
	m.status = fmt.Sprintf("%s: %s", it.key, state)
}
