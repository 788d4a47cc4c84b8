package logic

import "typeahead/internal/domain"

// ItemStore provides access to the current candidate list
type ItemStore interface {
	Items() []domain.RawItem
	Source() string
	Replace(source string, items []domain.RawItem)
	Count() int
}

// HistoryStore keeps recently committed selections, newest first
type HistoryStore interface {
	Add(sel domain.Selection)
	Recent(n int) []domain.Selection
	Clear()
}
