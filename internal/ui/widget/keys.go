package widget

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the widget's key bindings
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Hit        key.Binding
	Escape     key.Binding
	FocusList  key.Binding
	FocusInput key.Binding
	Paste      key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/ctrl+n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/ctrl+p", "previous"),
		),
		Hit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/leave"),
		),
		FocusList: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus list"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "focus input"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Hit, k.Escape}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Hit},
		{k.Escape, k.FocusList, k.FocusInput, k.Paste},
	}
}
