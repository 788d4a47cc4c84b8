// Package typeahead holds the rendering-independent logic of the typeahead
// widget: normalizing caller items, matching them against a query and the
// keyboard selection state machine.
package typeahead

import (
	"errors"
	"fmt"

	"typeahead/internal/domain"
)

// ErrMissingSerializer is returned by Format for a non-string item when no
// serializer was supplied.
var ErrMissingSerializer = errors.New("non-string item requires a serializer")

// Serializer turns a raw item into a string
type Serializer func(item any) string

// Format normalizes raw items into entries. IDs are positional.
func Format(items []any, serializer, screenReaderSerializer Serializer) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(items))
	for i, item := range items {
		var text string
		switch {
		case serializer != nil:
			text = serializer(item)
		default:
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d (%T): %w", i, item, ErrMissingSerializer)
			}
			text = s
		}

		srText := text
		if screenReaderSerializer != nil {
			srText = screenReaderSerializer(item)
		}

		entries = append(entries, domain.Entry{
			ID:               i,
			Data:             item,
			Text:             text,
			ScreenReaderText: srText,
		})
	}
	return entries, nil
}

// Strings converts a string slice into raw items
func Strings(values []string) []any {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return items
}
