package typeahead

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"typeahead/internal/domain"
)

// Matcher computes the ordered subset of entries that match a query
type Matcher interface {
	Match(entries []domain.Entry, query string) []domain.Entry
}

// MatcherFunc adapts a plain function to a Matcher
type MatcherFunc func(entries []domain.Entry, query string) []domain.Entry

func (f MatcherFunc) Match(entries []domain.Entry, query string) []domain.Entry {
	return f(entries, query)
}

// Indexer is implemented by matchers that precompute over the entry list.
// Index is called whenever the entries change.
type Indexer interface {
	Index(entries []domain.Entry)
}

// SubstringMatcher matches entries whose text contains the query, ignoring
// case. Results are ordered by where the match starts unless DisableSort.
type SubstringMatcher struct {
	DisableSort bool
}

func (m SubstringMatcher) Match(entries []domain.Entry, query string) []domain.Entry {
	q := strings.ToLower(query)

	type hit struct {
		entry domain.Entry
		pos   int
	}
	var hits []hit
	for _, e := range entries {
		pos := strings.Index(strings.ToLower(e.Text), q)
		if pos < 0 {
			continue
		}
		hits = append(hits, hit{entry: e, pos: pos})
	}

	if !m.DisableSort {
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].pos < hits[j].pos
		})
	}

	result := make([]domain.Entry, len(hits))
	for i, h := range hits {
		result[i] = h.entry
	}
	return result
}

// entrySource exposes entry texts to the fuzzy finder
type entrySource []domain.Entry

func (s entrySource) String(i int) string { return s[i].Text }
func (s entrySource) Len() int            { return len(s) }

// FuzzyMatcher ranks entries by subsequence match score
type FuzzyMatcher struct{}

func (FuzzyMatcher) Match(entries []domain.Entry, query string) []domain.Entry {
	matches := fuzzy.FindFrom(query, entrySource(entries))
	result := make([]domain.Entry, len(matches))
	for i, m := range matches {
		result[i] = entries[m.Index]
	}
	return result
}

// MatcherByName resolves the matcher names accepted in configuration
func MatcherByName(name string, disableSort bool) (Matcher, bool) {
	switch strings.ToLower(name) {
	case "", "substring", "contains":
		return SubstringMatcher{DisableSort: disableSort}, true
	case "fuzzy":
		return FuzzyMatcher{}, true
	case "prefix":
		return NewPrefixIndex(), true
	default:
		return nil, false
	}
}
