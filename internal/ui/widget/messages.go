package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/domain"
	"typeahead/internal/typeahead"
)

// EventMsg wraps a notification produced by the widget
type EventMsg struct {
	Event domain.DomainEvent
}

// SelectNextIntent asks the widget to move the highlight down
type SelectNextIntent struct{}

// SelectPreviousIntent asks the widget to move the highlight up
type SelectPreviousIntent struct{}

// HitIntent asks the widget to commit the highlighted item
type HitIntent struct{}

// ListItemBlurIntent reports that a focused list item lost focus.
// Related is where focus went, nil when it left the widget.
type ListItemBlurIntent struct {
	Related *typeahead.Element
}

// pastedMsg carries clipboard contents read for ctrl+v
type pastedMsg struct {
	text string
}

// pasteErrMsg reports a failed clipboard read
type pasteErrMsg struct {
	err error
}

// emit turns notifications into commands delivered in order
func emit(events []domain.DomainEvent) tea.Cmd {
	if len(events) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(events))
	for _, ev := range events {
		ev := ev
		cmds = append(cmds, func() tea.Msg { return EventMsg{Event: ev} })
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

func intent(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
