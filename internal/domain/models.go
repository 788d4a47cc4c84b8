package domain

// RawItem is a caller-supplied candidate: a string or an arbitrary record.
type RawItem = any

// Entry is a normalized suggestion
type Entry struct {
	ID               int    // position in the current input list
	Data             any    // the raw item, passed through untouched
	Text             string // display text
	ScreenReaderText string // plain text used in accessible rendering
}

// Selection is a committed entry kept in the history store
type Selection struct {
	Text  string
	Query string // query that was typed when the entry was hit
}
