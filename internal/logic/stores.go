package logic

import (
	"sync"

	"typeahead/internal/domain"
)

// MemoryItemStore is an in-memory implementation of ItemStore
type MemoryItemStore struct {
	mu     sync.RWMutex
	source string
	items  []domain.RawItem
}

// NewMemoryItemStore creates a new memory-based item store
func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{}
}

func (s *MemoryItemStore) Items() []domain.RawItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]domain.RawItem, len(s.items))
	copy(result, s.items)
	return result
}

func (s *MemoryItemStore) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *MemoryItemStore) Replace(source string, items []domain.RawItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
	s.items = items
}

func (s *MemoryItemStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// MemoryHistoryStore is a bounded in-memory HistoryStore. Re-selecting an
// entry moves it to the front instead of duplicating it.
type MemoryHistoryStore struct {
	mu       sync.RWMutex
	capacity int
	entries  []domain.Selection
}

// NewMemoryHistoryStore creates a history holding at most capacity selections
func NewMemoryHistoryStore(capacity int) *MemoryHistoryStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryHistoryStore{capacity: capacity}
}

func (s *MemoryHistoryStore) Add(sel domain.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Selection, 0, len(s.entries)+1)
	kept = append(kept, sel)
	for _, e := range s.entries {
		if e.Text != sel.Text {
			kept = append(kept, e)
		}
	}
	if len(kept) > s.capacity {
		kept = kept[:s.capacity]
	}
	s.entries = kept
}

func (s *MemoryHistoryStore) Recent(n int) []domain.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	result := make([]domain.Selection, n)
	copy(result, s.entries[:n])
	return result
}

func (s *MemoryHistoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
