package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the model reacts to
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Focus   key.Binding
	Raise   key.Binding
	Lower   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Refit   key.Binding
	Filter  key.Binding
	Clear   key.Binding
	Details key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "map/panel")),
		Raise:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "raise panel")),
		Lower:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "lower panel")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Refit:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "fit results")),
		Filter:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "min rating")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		Details: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Reload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Enter, k.Raise, k.Lower, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.ZoomIn, k.ZoomOut},
		{k.Enter, k.Focus, k.Raise, k.Lower, k.Clear},
		{k.Refit, k.Filter, k.Details, k.Reload, k.Help, k.Quit},
	}
}
