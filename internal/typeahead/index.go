package typeahead

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"typeahead/internal/domain"
)

// PrefixIndex matches entries where the whole text or one of its words
// starts with the query. Results keep positional order.
type PrefixIndex struct {
	trie *patricia.Trie
}

// NewPrefixIndex creates an empty index
func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{trie: patricia.NewTrie()}
}

// Index rebuilds the trie from entries
func (x *PrefixIndex) Index(entries []domain.Entry) {
	x.trie = patricia.NewTrie()
	for _, e := range entries {
		text := strings.ToLower(e.Text)
		x.add(text, e.ID)
		for _, word := range strings.Fields(text) {
			if word != text {
				x.add(word, e.ID)
			}
		}
	}
}

func (x *PrefixIndex) add(key string, id int) {
	if key == "" {
		return
	}
	p := patricia.Prefix(key)
	if existing, ok := x.trie.Get(p).([]int); ok {
		if existing[len(existing)-1] != id {
			x.trie.Set(p, append(existing, id))
		}
		return
	}
	x.trie.Insert(p, []int{id})
}

func (x *PrefixIndex) Match(entries []domain.Entry, query string) []domain.Entry {
	if x.trie == nil {
		x.Index(entries)
	}

	ids := make(map[int]bool)
	err := x.trie.VisitSubtree(patricia.Prefix(strings.ToLower(query)), func(_ patricia.Prefix, item patricia.Item) error {
		for _, id := range item.([]int) {
			ids[id] = true
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting prefix index: %v", err)
		return nil
	}

	var result []domain.Entry
	for _, e := range entries {
		if ids[e.ID] {
			result = append(result, e)
		}
	}
	return result
}
