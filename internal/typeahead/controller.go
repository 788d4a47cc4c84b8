package typeahead

import (
	"typeahead/internal/domain"
)

// State is the position of the selection state machine
type State int

const (
	StateClosed State = iota
	StateOpenNoneActive
	StateOpenActive
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenNoneActive:
		return "open"
	case StateOpenActive:
		return "active"
	default:
		return "unknown"
	}
}

// Options configures a Controller
type Options struct {
	Engine          Engine
	NoResults       NoResultsInfo
	AutoSelectFirst bool     // highlight the first match whenever the list reopens
	ClampAtFirst    bool     // previous on the first item stays there instead of clearing
	ListContainer   *Element // blur into this subtree keeps the widget open
	InputName       string
}

// Controller owns query, focus and active-item state. Every operation
// returns the notifications it produced instead of calling out.
type Controller struct {
	opts      Options
	entries   []domain.Entry
	query     string
	focused   bool
	dismissed bool // closed by a hit until the next input or focus
	view      ListView
	active    int
}

// NewController creates a closed controller with no data
func NewController(opts Options) *Controller {
	if opts.Engine.Matcher == nil {
		opts.Engine.Matcher = SubstringMatcher{}
	}
	return &Controller{opts: opts, active: -1}
}

// SetData replaces the entries and re-clamps the active item
func (c *Controller) SetData(entries []domain.Entry) {
	c.entries = entries
	if ix, ok := c.opts.Engine.Matcher.(Indexer); ok {
		ix.Index(entries)
	}
	c.recompute(false)
}

// Input handles a user edit of the query
func (c *Controller) Input(query string) []domain.DomainEvent {
	if c.focused && !c.dismissed && query == c.query {
		return nil
	}
	c.focused = true
	c.dismissed = false
	c.query = query
	c.recompute(true)
	return []domain.DomainEvent{domain.QueryChangedEvent{Query: query}}
}

// SetValue updates the bound query from the caller side
func (c *Controller) SetValue(query string) {
	if query == c.query {
		return
	}
	c.query = query
	c.recompute(true)
}

// SelectNext moves the highlight down, stopping at the last item
func (c *Controller) SelectNext() {
	n := len(c.view.Items)
	if !c.view.Open || n == 0 {
		return
	}
	if c.active < 0 {
		c.active = 0
		return
	}
	if c.active < n-1 {
		c.active++
	}
}

// SelectPrevious moves the highlight up; leaving the first item clears it
// unless ClampAtFirst is set
func (c *Controller) SelectPrevious() {
	if !c.view.Open || len(c.view.Items) == 0 {
		return
	}
	switch {
	case c.active > 0:
		c.active--
	case c.opts.ClampAtFirst && c.active == 0:
	default:
		c.active = -1
	}
}

// Hit commits the active item, or reports a plain submit when none is active
func (c *Controller) Hit() []domain.DomainEvent {
	if c.State() != StateOpenActive {
		return []domain.DomainEvent{domain.SubmitEvent{Query: c.query, InputName: c.opts.InputName}}
	}

	entry := c.view.Items[c.active]
	c.query = entry.Text
	c.dismissed = true
	c.recompute(true)

	return []domain.DomainEvent{
		domain.QueryChangedEvent{Query: entry.Text},
		domain.HitEvent{Entry: entry},
	}
}

// HitAt commits the item at index i of the visible list, as a click does
func (c *Controller) HitAt(i int) []domain.DomainEvent {
	if !c.view.Open || i < 0 || i >= len(c.view.Items) {
		return nil
	}
	c.active = i
	return c.Hit()
}

// Focus marks the input focused and reopens the list for the current query
func (c *Controller) Focus() []domain.DomainEvent {
	c.focused = true
	c.dismissed = false
	c.recompute(true)
	return []domain.DomainEvent{domain.FocusEvent{}}
}

// Blur closes the widget unless focus moved to an element inside the list
func (c *Controller) Blur(related *Element) []domain.DomainEvent {
	if related != nil && related.Within(c.opts.ListContainer) {
		return nil
	}
	c.focused = false
	c.recompute(true)
	return []domain.DomainEvent{domain.BlurEvent{}}
}

// Paste forwards pasted text without touching selection state
func (c *Controller) Paste(text string) []domain.DomainEvent {
	return []domain.DomainEvent{domain.PasteEvent{Text: text}}
}

// KeyUp forwards a key notification
func (c *Controller) KeyUp(key string) []domain.DomainEvent {
	return []domain.DomainEvent{domain.KeyUpEvent{Key: key}}
}

// Escape clears a non-empty query, otherwise leaves the widget
func (c *Controller) Escape() []domain.DomainEvent {
	if c.query != "" {
		return c.Input("")
	}
	return c.Blur(nil)
}

// State returns the current machine state
func (c *Controller) State() State {
	switch {
	case !c.view.Open:
		return StateClosed
	case c.active < 0:
		return StateOpenNoneActive
	default:
		return StateOpenActive
	}
}

// Active returns the highlighted index into View().Items, or -1
func (c *Controller) Active() int {
	return c.active
}

// Query returns the bound query
func (c *Controller) Query() string {
	return c.query
}

// Focused reports whether the input (or the list) holds focus
func (c *Controller) Focused() bool {
	return c.focused
}

// View returns the derived list state
func (c *Controller) View() ListView {
	return c.view
}

func (c *Controller) recompute(resetActive bool) {
	matches := c.opts.Engine.Filter(c.entries, c.query)
	c.view = BuildView(ViewInput{
		Focused:   c.focused && !c.dismissed,
		Query:     c.query,
		Matches:   matches,
		Engine:    c.opts.Engine,
		NoResults: c.opts.NoResults,
	})

	n := len(c.view.Items)
	switch {
	case !c.view.Open || n == 0:
		c.active = -1
	case resetActive && c.opts.AutoSelectFirst:
		c.active = 0
	case resetActive:
		c.active = -1
	case c.active >= n:
		c.active = n - 1
	}
}
