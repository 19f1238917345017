package tui

import key "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Home      key.Binding
	Copy      key.Binding
	CopyLater key.Binding
	Hide      key.Binding
	ShowAll   key.Binding
	Unselect  key.Binding
	CopyWKT   key.Binding
	Paste     key.Binding
	Sidebar   key.Binding
	Table     key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Home:      key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("0", "home")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		CopyLater: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "copy in 3s")),
		Hide:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide hovered")),
		ShowAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "show all")),
		Unselect:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unselect all")),
		CopyWKT:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "copy selection")),
		Paste:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste selection")),
		Sidebar:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "datasets")),
		Table:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "selection table")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "show/hide")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Home, k.Copy, k.Sidebar, k.Table, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.Home},
		{k.Copy, k.CopyLater, k.CopyWKT, k.Paste},
		{k.Hide, k.ShowAll, k.Unselect},
		{k.Sidebar, k.Table, k.Toggle, k.Back, k.Help, k.Quit},
	}
}
