package tui

import "github.com/charmbracelet/bubbles/key"

// listKeyMap holds key bindings for the contact list.
type listKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Add     key.Binding
	Filter  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns the list bindings for the help bar.
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Add, k.Filter, k.Quit}
}

// FullHelp returns the list bindings grouped for expanded help.
func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Add, k.Filter, k.Refresh, k.Quit},
	}
}

// filterKeyMap holds key bindings while typing a list filter.
type filterKeyMap struct {
	Accept key.Binding
	Clear  key.Binding
	Up     key.Binding
	Down   key.Binding
}

func (k filterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Accept, k.Clear}
}

func (k filterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// detailKeyMap holds key bindings for the detail pane.
type detailKeyMap struct {
	Edit   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k detailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Delete, k.Back, k.Quit}
}

func (k detailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// confirmKeyMap holds key bindings for the delete confirmation.
type confirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// formKeyMap holds key bindings for the edit form. Save is disabled while
// the name field is blank, which also hides it from the help bar.
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Save, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newFilterKeyMap() filterKeyMap {
	return filterKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
	}
}

func newDetailKeyMap() detailKeyMap {
	return detailKeyMap{
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm delete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("any other key", "cancel"),
		),
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

var (
	listKeys    = newListKeyMap()
	filterKeys  = newFilterKeyMap()
	detailKeys  = newDetailKeyMap()
	confirmKeys = newConfirmKeyMap()
	formKeys    = newFormKeyMap()
)
