package ui

import (
	"typeahead/internal/domain"
)

// itemsLoadedMsg carries the result of (re)loading the item source
type itemsLoadedMsg struct {
	source string
	items  []domain.RawItem
	err    error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
