package widget

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/domain"
	"typeahead/internal/typeahead"
)

var countries = []string{"Canada", "United States", "Mexico", "Japan", "China", "United Kingdom"}

func newWidget(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := New(typeahead.Strings(countries), opts)
	require.NoError(t, err)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m, _ = run(m, focusMsg{})
	return m
}

// focusMsg lets tests focus through the same message loop
type focusMsg struct{}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, keyRunes(string(r)))
	}
	return msgs
}

// run feeds msgs through Update, looping intent messages back in and
// collecting notifications
func run(m Model, msgs ...tea.Msg) (Model, []domain.DomainEvent) {
	var events []domain.DomainEvent
	queue := append([]tea.Msg(nil), msgs...)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		var cmd tea.Cmd
		if _, ok := msg.(focusMsg); ok {
			cmd = m.Focus()
		} else {
			m, cmd = m.Update(msg)
		}
		for _, out := range drain(cmd) {
			if ev, ok := out.(EventMsg); ok {
				events = append(events, ev.Event)
				continue
			}
			queue = append(queue, out)
		}
	}
	return m, events
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	// batches and sequences are both slices of commands
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
				out = append(out, drain(c)...)
			}
		}
		return out
	}
	return []tea.Msg{msg}
}

func ofType(events []domain.DomainEvent, typ domain.EventType) []domain.DomainEvent {
	var out []domain.DomainEvent
	for _, e := range events {
		if e.Type() == typ {
			out = append(out, e)
		}
	}
	return out
}

func itemTexts(m Model) []string {
	var out []string
	for _, e := range m.ListView().Items {
		out = append(out, e.Text)
	}
	return out
}

func TestWidgetFocusNotifies(t *testing.T) {
	m, err := New(typeahead.Strings(countries), Options{})
	require.NoError(t, err)
	m.input.Cursor.SetMode(cursor.CursorStatic)

	m, events := run(m, focusMsg{})
	assert.Len(t, ofType(events, domain.EventFocus), 1)
	assert.True(t, m.Focused())
	assert.Equal(t, typeahead.StateClosed, m.State())
}

func TestWidgetTypingOpensList(t *testing.T) {
	m := newWidget(t, Options{})

	m, events := run(m, typeText("Can")...)
	assert.Equal(t, "Can", m.Value())
	assert.Equal(t, []string{"Canada"}, itemTexts(m))
	assert.Equal(t, typeahead.StateOpenNoneActive, m.State())

	// one query change per edit, every key reported
	assert.Len(t, ofType(events, domain.EventQueryChanged), 3)
	assert.Len(t, ofType(events, domain.EventKeyUp), 3)
	assert.Contains(t, m.View(), "Canada")
}

func TestWidgetIgnoresKeysWhenUnfocused(t *testing.T) {
	m, err := New(typeahead.Strings(countries), Options{})
	require.NoError(t, err)

	m, events := run(m, typeText("Can")...)
	assert.Empty(t, events)
	assert.Equal(t, "", m.Value())
}

func TestWidgetArrowNavigationClamps(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Un")...)
	require.Equal(t, []string{"United States", "United Kingdom"}, itemTexts(m))

	m, _ = run(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Active())

	for i := 0; i < 5; i++ {
		m, _ = run(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 1, m.Active())

	m, _ = run(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, -1, m.Active())
	assert.Equal(t, typeahead.StateOpenNoneActive, m.State())
}

func TestWidgetEnterCommitsActive(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Can")...)

	m, events := run(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	hits := ofType(events, domain.EventHit)
	require.Len(t, hits, 1)
	assert.Equal(t, "Canada", hits[0].(domain.HitEvent).Entry.Text)
	assert.Equal(t, "Canada", m.Value())
	assert.Equal(t, "Canada", m.input.Value())
	assert.Equal(t, typeahead.StateClosed, m.State())
	assert.NotContains(t, m.View(), "Kingdom")
}

func TestWidgetEnterWithoutActiveSubmits(t *testing.T) {
	m := newWidget(t, Options{InputName: "country"})
	m, _ = run(m, typeText("Ch")...)

	_, events := run(m, tea.KeyMsg{Type: tea.KeyEnter})
	submits := ofType(events, domain.EventSubmit)
	require.Len(t, submits, 1)
	assert.Equal(t, domain.SubmitEvent{Query: "Ch", InputName: "country"}, submits[0])
}

func TestWidgetTabIntoListKeepsFocus(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Un")...)

	m, events := run(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Empty(t, ofType(events, domain.EventBlur))
	assert.True(t, m.ListFocused())
	assert.True(t, m.Focused())
	assert.Equal(t, 0, m.Active())

	m, _ = run(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Active())

	m, events = run(m, tea.KeyMsg{Type: tea.KeyEnter})
	hits := ofType(events, domain.EventHit)
	require.Len(t, hits, 1)
	assert.Equal(t, "United Kingdom", hits[0].(domain.HitEvent).Entry.Text)
	assert.False(t, m.ListFocused())
}

func TestWidgetEscapeFromListBlurs(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Un")...)
	m, _ = run(m, tea.KeyMsg{Type: tea.KeyTab})

	m, events := run(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, ofType(events, domain.EventBlur), 1)
	assert.False(t, m.Focused())
	assert.Equal(t, typeahead.StateClosed, m.State())
}

func TestWidgetShiftTabReturnsToInput(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Un")...)
	m, _ = run(m, tea.KeyMsg{Type: tea.KeyTab})

	m, events := run(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Empty(t, ofType(events, domain.EventBlur))
	assert.Len(t, ofType(events, domain.EventFocus), 1)
	assert.False(t, m.ListFocused())
	assert.True(t, m.Focused())
}

func TestWidgetBlurTo(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Un")...)

	inside := typeahead.NewElement("row", m.ListElement())
	assert.Nil(t, drain(m.BlurTo(inside)))
	assert.True(t, m.Focused())

	msgs := drain(m.BlurTo(typeahead.NewElement("elsewhere", nil)))
	require.Len(t, msgs, 1)
	assert.Equal(t, EventMsg{Event: domain.BlurEvent{}}, msgs[0])
	assert.False(t, m.Focused())
}

func TestWidgetEscapeClearsThenLeaves(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Can")...)

	m, _ = run(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.Value())
	assert.Equal(t, "", m.input.Value())
	assert.True(t, m.Focused())

	m, events := run(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, ofType(events, domain.EventBlur), 1)
	assert.False(t, m.Focused())
}

func TestWidgetNoResults(t *testing.T) {
	m := newWidget(t, Options{NoResults: typeahead.NoResultsInfo{Message: "No results found"}})

	m, _ = run(m, typeText("xyz")...)
	assert.Contains(t, m.View(), "No results found")

	m, _ = run(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = run(m, typeText("Ca")...)
	assert.NotContains(t, m.View(), "No results found")
}

func TestWidgetNoResultsTemplate(t *testing.T) {
	m := newWidget(t, Options{NoResults: typeahead.NoResultsInfo{
		Message:  "No results found",
		Template: func(q string) string { return "nothing for " + q },
	}})

	m, _ = run(m, typeText("zz")...)
	view := m.View()
	assert.Contains(t, view, "nothing for zz")
	assert.NotContains(t, view, "No results found")
}

func TestWidgetClipboardPaste(t *testing.T) {
	m := newWidget(t, Options{Clipboard: func() (string, error) { return "Mex", nil }})

	m, events := run(m, tea.KeyMsg{Type: tea.KeyCtrlV})
	pastes := ofType(events, domain.EventPaste)
	require.Len(t, pastes, 1)
	assert.Equal(t, domain.PasteEvent{Text: "Mex"}, pastes[0])
	assert.Equal(t, "Mex", m.input.Value())

	// suggestions wait for an explicit refresh
	assert.Equal(t, typeahead.StateClosed, m.State())
	drain(m.Refresh())
	assert.Equal(t, []string{"Mexico"}, itemTexts(m))
}

func TestWidgetClipboardError(t *testing.T) {
	m := newWidget(t, Options{Clipboard: func() (string, error) { return "", errors.New("no clipboard") }})

	m, events := run(m, tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Empty(t, ofType(events, domain.EventPaste))
	assert.Equal(t, "", m.input.Value())
}

func TestWidgetBracketedPaste(t *testing.T) {
	m := newWidget(t, Options{})

	m, events := run(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Jap"), Paste: true})
	assert.Len(t, ofType(events, domain.EventPaste), 1)
	assert.Equal(t, "Jap", m.input.Value())
}

func TestWidgetClickItem(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Un")...)

	msgs := drain(m.ClickItem(1))
	require.Len(t, msgs, 2)
	assert.Equal(t, EventMsg{Event: domain.QueryChangedEvent{Query: "United Kingdom"}}, msgs[0])
	assert.Equal(t, "United Kingdom", m.Value())

	assert.Nil(t, m.ClickItem(7))
}

func TestWidgetAccessibleView(t *testing.T) {
	data := []any{
		map[string]any{"name": "Canada", "sr": "Canada, North America"},
		map[string]any{"name": "Cameroon", "sr": "Cameroon, Africa"},
	}
	field := func(name string) typeahead.Serializer {
		return func(item any) string { return item.(map[string]any)[name].(string) }
	}
	m, err := New(data, Options{Serializer: field("name"), ScreenReaderSerializer: field("sr"), Accessible: true})
	require.NoError(t, err)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m, _ = run(m, focusMsg{})
	m, _ = run(m, append(typeText("Ca"), tea.KeyMsg{Type: tea.KeyDown})...)

	view := m.View()
	assert.Contains(t, view, "> Canada, North America")
	assert.Contains(t, view, "  Cameroon, Africa")
}

func TestWidgetRequiresSerializerForRecords(t *testing.T) {
	_, err := New([]any{map[string]any{"name": "Canada"}}, Options{})
	require.ErrorIs(t, err, typeahead.ErrMissingSerializer)
}

func TestWidgetSetData(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("Un")...)
	m, _ = run(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})

	require.NoError(t, m.SetData(typeahead.Strings([]string{"United States"})))
	assert.Equal(t, 0, m.Active())
}

func TestWidgetLabelAndTruncation(t *testing.T) {
	long := strings.Repeat("Canada", 20)
	m, err := New(typeahead.Strings([]string{long}), Options{InputName: "country", Width: 30})
	require.NoError(t, err)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m, _ = run(m, focusMsg{})
	m, _ = run(m, typeText("Ca")...)

	view := m.View()
	assert.Contains(t, view, "country")
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, long)
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	assert.Len(t, k.ShortHelp(), 4)
	assert.Len(t, k.FullHelp(), 2)
}

func TestWidgetListScrollsWithActive(t *testing.T) {
	data := typeahead.Strings([]string{"ab1", "ab2", "ab3", "ab4", "ab5", "ab6"})
	m, err := New(data, Options{MaxVisible: 3, Accessible: true})
	require.NoError(t, err)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m, _ = run(m, focusMsg{})

	m, _ = run(m, typeText("ab")...)
	view := m.View()
	assert.Contains(t, view, "ab3")
	assert.NotContains(t, view, "ab4")
	assert.Contains(t, view, "↓ 3 more")
	assert.NotContains(t, view, "↑")

	down := tea.KeyMsg{Type: tea.KeyDown}
	m, _ = run(m, down, down, down, down, down)
	require.Equal(t, 4, m.Active())

	view = m.View()
	assert.Contains(t, view, "> ab5")
	assert.NotContains(t, view, "ab2")
	assert.Contains(t, view, "↑ 2 more")
	assert.Contains(t, view, "↓ 1 more")

	// header is three rows, then the "↑ 2 more" marker, then ab3
	m, events := run(m, tea.MouseMsg{X: 2, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Equal(t, "ab4", m.Value())
	assert.Len(t, ofType(events, domain.EventHit), 1)
}

func TestWidgetMouseClickCommitsRow(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, typeText("an")...)
	require.Equal(t, []string{"Canada", "Japan"}, itemTexts(m))

	release := func(y int) tea.MouseMsg {
		return tea.MouseMsg{X: 4, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	}

	// clicks on the input group or below the list do nothing
	m, events := run(m, release(1), release(6))
	assert.Empty(t, events)

	// presses and other buttons are ignored
	m, events = run(m,
		tea.MouseMsg{X: 4, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 4, Y: 4, Button: tea.MouseButtonRight, Action: tea.MouseActionRelease},
	)
	assert.Empty(t, events)

	// the list starts right under the three-row input group
	m, events = run(m, release(4))
	require.Len(t, events, 2)
	assert.Equal(t, domain.QueryChangedEvent{Query: "Japan"}, events[0])
	assert.Equal(t, domain.HitEvent{Entry: domain.Entry{ID: 3, Data: "Japan", Text: "Japan", ScreenReaderText: "Japan"}}, events[1])
	assert.Equal(t, "Japan", m.input.Value())
	assert.Equal(t, typeahead.StateClosed, m.State())
}

func TestWidgetListFocusReturnsWhenListCloses(t *testing.T) {
	m := newWidget(t, Options{})
	m, _ = run(m, append(typeText("Can"), tea.KeyMsg{Type: tea.KeyTab})...)
	require.True(t, m.ListFocused())

	require.NoError(t, m.SetData(typeahead.Strings([]string{"Norway"})))
	assert.False(t, m.ListFocused())
	assert.Equal(t, typeahead.StateClosed, m.State())

	// typing reaches the input again
	m, events := run(m, keyRunes("x"))
	assert.Equal(t, "Canx", m.Value())
	assert.Equal(t, []domain.DomainEvent{domain.QueryChangedEvent{Query: "Canx"}}, ofType(events, domain.EventQueryChanged))

	m, events = run(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []domain.DomainEvent{domain.SubmitEvent{Query: "Canx"}}, ofType(events, domain.EventSubmit))
}

func TestWidgetSetValue(t *testing.T) {
	m := newWidget(t, Options{})

	m.SetValue("Jap")
	assert.Equal(t, "Jap", m.Value())
	assert.Equal(t, "Jap", m.input.Value())
	assert.Equal(t, []string{"Japan"}, itemTexts(m))

	// moving the query away from the focused list hands focus back
	m, _ = run(m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.ListFocused())
	m.SetValue("zzz")
	assert.False(t, m.ListFocused())
	assert.Equal(t, typeahead.StateClosed, m.State())
}

func TestWidgetEngineOption(t *testing.T) {
	// nil engine applies the two-character minimum
	m := newWidget(t, Options{})
	m, _ = run(m, keyRunes("c"))
	assert.Equal(t, typeahead.StateClosed, m.State())

	// a set engine is used as given, zero minimum included
	m = newWidget(t, Options{Engine: &typeahead.Engine{}})
	m, _ = run(m, keyRunes("c"))
	assert.Equal(t, []string{"Canada", "China", "Mexico"}, itemTexts(m))
}
