package typeahead

import (
	"unicode/utf8"

	"typeahead/internal/domain"
)

const (
	DefaultMaxMatches       = 10
	DefaultMinMatchingChars = 2
)

// Engine applies the list-opening policy around a Matcher
type Engine struct {
	Matcher          Matcher
	MaxMatches       int // 0 means unlimited
	MinMatchingChars int
	ShowOnFocus      bool // open on focus even with a short or empty query
	ShowAllResults   bool // skip matching and list every entry
}

// NewEngine returns an engine with the default substring matcher
func NewEngine() Engine {
	return Engine{
		Matcher:          SubstringMatcher{},
		MaxMatches:       DefaultMaxMatches,
		MinMatchingChars: DefaultMinMatchingChars,
	}
}

// Searching reports whether query is long enough to produce suggestions
func (e Engine) Searching(query string) bool {
	if e.ShowOnFocus {
		return true
	}
	if query == "" {
		return false
	}
	return utf8.RuneCountInString(query) >= e.MinMatchingChars
}

// Filter returns the entries to display for query
func (e Engine) Filter(entries []domain.Entry, query string) []domain.Entry {
	if !e.Searching(query) {
		return nil
	}

	var matches []domain.Entry
	if e.ShowAllResults || query == "" {
		matches = make([]domain.Entry, len(entries))
		copy(matches, entries)
	} else {
		matcher := e.Matcher
		if matcher == nil {
			matcher = SubstringMatcher{}
		}
		matches = matcher.Match(entries, query)
	}

	if e.MaxMatches > 0 && len(matches) > e.MaxMatches {
		matches = matches[:e.MaxMatches]
	}
	return matches
}

// NoResultsInfo configures what the list shows when nothing matches.
// Template takes precedence; Message is then never shown.
type NoResultsInfo struct {
	Message  string
	Template func(query string) string
}

// Resolve returns the text to show for query
func (n NoResultsInfo) Resolve(query string) (string, bool) {
	if n.Template != nil {
		return n.Template(query), true
	}
	if n.Message != "" {
		return n.Message, true
	}
	return "", false
}

// ViewInput is everything the list visibility depends on
type ViewInput struct {
	Focused   bool
	Query     string
	Matches   []domain.Entry
	Engine    Engine
	NoResults NoResultsInfo
}

// ListView is the derived state of the suggestion list
type ListView struct {
	Open          bool
	Items         []domain.Entry
	ShowNoResults bool
	NoResults     string
}

// BuildView derives list visibility and content
func BuildView(in ViewInput) ListView {
	if !in.Focused || !in.Engine.Searching(in.Query) {
		return ListView{}
	}
	if len(in.Matches) > 0 {
		return ListView{Open: true, Items: in.Matches}
	}
	if msg, ok := in.NoResults.Resolve(in.Query); ok {
		return ListView{Open: true, ShowNoResults: true, NoResults: msg}
	}
	return ListView{}
}
