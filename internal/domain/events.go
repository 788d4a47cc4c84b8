package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventHit          EventType = "Hit"
	EventQueryChanged EventType = "QueryChanged"
	EventFocus        EventType = "Focus"
	EventBlur         EventType = "Blur"
	EventPaste        EventType = "Paste"
	EventKeyUp        EventType = "KeyUp"
	EventSubmit       EventType = "Submit"
	EventItemsLoaded  EventType = "ItemsLoaded"
	EventError        EventType = "Error"
	EventConfigLoaded EventType = "ConfigLoaded"
	EventConfigSaved  EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// HitEvent is emitted when a suggestion is committed as the selected value
type HitEvent struct {
	Entry Entry
}

func (e HitEvent) Type() EventType { return EventHit }

// QueryChangedEvent is emitted when the user edits the query
type QueryChangedEvent struct {
	Query string
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// FocusEvent is emitted whenever the input gains focus
type FocusEvent struct{}

func (e FocusEvent) Type() EventType { return EventFocus }

// BlurEvent is emitted when focus leaves the widget entirely
type BlurEvent struct{}

func (e BlurEvent) Type() EventType { return EventBlur }

// PasteEvent is emitted when text is pasted into the input
type PasteEvent struct {
	Text string
}

func (e PasteEvent) Type() EventType { return EventPaste }

// KeyUpEvent forwards every key the widget handled
type KeyUpEvent struct {
	Key string
}

func (e KeyUpEvent) Type() EventType { return EventKeyUp }

// SubmitEvent is emitted when enter is pressed with no active suggestion
type SubmitEvent struct {
	Query     string
	InputName string
}

func (e SubmitEvent) Type() EventType { return EventSubmit }

// ItemsLoadedEvent is emitted after the item source has been (re)loaded
type ItemsLoadedEvent struct {
	Source string
	Count  int
}

func (e ItemsLoadedEvent) Type() EventType { return EventItemsLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
