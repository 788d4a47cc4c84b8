package widget

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/typeahead"
)

// ListItem is the focused row of the suggestion list. It never touches
// selection state; it only reports what the user asked for.
type ListItem struct {
	Element *typeahead.Element
	input   *typeahead.Element
	keys    KeyMap
}

// Update maps a key press to an intent command
func (li ListItem) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, li.keys.Next):
		return intent(SelectNextIntent{})
	case key.Matches(msg, li.keys.Prev):
		return intent(SelectPreviousIntent{})
	case key.Matches(msg, li.keys.Hit):
		return intent(HitIntent{})
	case key.Matches(msg, li.keys.FocusInput):
		return intent(ListItemBlurIntent{Related: li.input})
	case key.Matches(msg, li.keys.Escape), key.Matches(msg, li.keys.FocusList):
		return intent(ListItemBlurIntent{})
	}
	return nil
}
