// Package widget is the bubbletea rendering of the typeahead: a text input
// with a suggestion list beneath it.
package widget

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"typeahead/internal/domain"
	"typeahead/internal/typeahead"
	"typeahead/internal/ui/views"
)

const defaultWidth = 60

// Options configures a widget
type Options struct {
	Serializer                typeahead.Serializer
	ScreenReaderSerializer    typeahead.Serializer
	BackgroundVariantResolver typeahead.VariantResolver

	TextVariant       string
	BackgroundVariant string

	InputName   string
	Placeholder string
	Size        string // "sm", "lg" or empty

	NoResults typeahead.NoResultsInfo
	// Engine nil means typeahead.NewEngine()
	Engine          *typeahead.Engine
	AutoSelectFirst bool
	ClampAtFirst    bool

	Width      int
	MaxVisible int // 0 shows every suggestion
	Accessible bool
	KeyMap     *KeyMap
	Styles     *views.Styles

	// Clipboard reads text for the paste binding; defaults to the system clipboard
	Clipboard func() (string, error)
}

// Model is the widget's bubbletea model
type Model struct {
	opts   Options
	engine typeahead.Engine
	keys   KeyMap
	styles *views.Styles
	input  textinput.Model
	ctrl   *typeahead.Controller

	root        *typeahead.Element
	inputEl     *typeahead.Element
	listEl      *typeahead.Element
	itemEls     []*typeahead.Element
	listFocused bool
	viewport    *views.Viewport
}

// New creates an unfocused widget over data
func New(data []any, opts Options) (Model, error) {
	engine := typeahead.NewEngine()
	if opts.Engine != nil {
		engine = *opts.Engine
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Styles == nil {
		opts.Styles = views.NewStyles()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.ReadAll
	}
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "› "
	ti.Width = opts.Width - 4
	ti.KeyMap.Paste.SetEnabled(false)

	m := Model{
		opts:     opts,
		engine:   engine,
		keys:     keys,
		styles:   opts.Styles,
		input:    ti,
		viewport: views.NewViewport(opts.MaxVisible),
	}
	m.root = typeahead.NewElement("typeahead", nil)
	m.inputEl = typeahead.NewElement("input", m.root)
	m.listEl = typeahead.NewElement("list", m.root)
	m.ctrl = typeahead.NewController(m.controllerOptions())

	if err := m.SetData(data); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) controllerOptions() typeahead.Options {
	return typeahead.Options{
		Engine:          m.engine,
		NoResults:       m.opts.NoResults,
		AutoSelectFirst: m.opts.AutoSelectFirst,
		ClampAtFirst:    m.opts.ClampAtFirst,
		ListContainer:   m.listEl,
		InputName:       m.opts.InputName,
	}
}

// SetData replaces the candidate items
func (m *Model) SetData(data []any) error {
	entries, err := typeahead.Format(data, m.opts.Serializer, m.opts.ScreenReaderSerializer)
	if err != nil {
		return fmt.Errorf("format items: %w", err)
	}
	m.ctrl.SetData(entries)
	m.leaveClosedList()
	return nil
}

// SetValue sets the query from the caller side
func (m *Model) SetValue(query string) {
	m.input.SetValue(query)
	m.input.CursorEnd()
	m.ctrl.SetValue(query)
	m.leaveClosedList()
}

// Refresh recomputes suggestions from the current input text
func (m *Model) Refresh() tea.Cmd {
	events := m.ctrl.Input(m.input.Value())
	return tea.Batch(m.leaveClosedList(), emit(events))
}

// leaveClosedList hands focus back to the input once the list it sat in
// is no longer shown
func (m *Model) leaveClosedList() tea.Cmd {
	if !m.listFocused || m.listShown() {
		return nil
	}
	m.listFocused = false
	return m.input.Focus()
}

func (m Model) listShown() bool {
	view := m.ctrl.View()
	return view.Open && len(view.Items) > 0
}

// Focus gives the input focus
func (m *Model) Focus() tea.Cmd {
	m.listFocused = false
	return tea.Batch(m.input.Focus(), emit(m.ctrl.Focus()))
}

// Blur moves focus out of the widget
func (m *Model) Blur() tea.Cmd {
	return m.BlurTo(nil)
}

// BlurTo moves focus to related; no blur is reported when related is part
// of the suggestion list
func (m *Model) BlurTo(related *typeahead.Element) tea.Cmd {
	m.input.Blur()
	events := m.ctrl.Blur(related)
	m.listFocused = related.Within(m.listEl)
	return emit(events)
}

// ClickItem commits the visible item at index i
func (m *Model) ClickItem(i int) tea.Cmd {
	events := m.ctrl.HitAt(i)
	if events == nil {
		return nil
	}
	m.syncInput()
	return emit(events)
}

// Value returns the current query
func (m Model) Value() string {
	return m.ctrl.Query()
}

// Focused reports whether the widget holds focus
func (m Model) Focused() bool {
	return m.ctrl.Focused()
}

// ListFocused reports whether focus is on a list item
func (m Model) ListFocused() bool {
	return m.listFocused
}

// State returns the selection state
func (m Model) State() typeahead.State {
	return m.ctrl.State()
}

// Active returns the highlighted index, or -1
func (m Model) Active() int {
	return m.ctrl.Active()
}

// ListView returns the derived list state
func (m Model) ListView() typeahead.ListView {
	return m.ctrl.View()
}

// ListElement is the focus-tree node of the suggestion list
func (m Model) ListElement() *typeahead.Element {
	return m.listEl
}

// KeyMap returns the active bindings
func (m Model) KeyMap() KeyMap {
	return m.keys
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var refocus tea.Cmd
		if m.listFocused {
			if m.listShown() {
				return m, m.focusedItem().Update(msg)
			}
			refocus = m.leaveClosedList()
		}
		if !m.ctrl.Focused() {
			return m, refocus
		}
		var cmd tea.Cmd
		m, cmd = m.updateInput(msg)
		return m, tea.Batch(refocus, cmd)

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		i, ok := m.itemAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.listFocused = false
		return m, tea.Batch(m.input.Focus(), m.ClickItem(i))

	case SelectNextIntent:
		m.ctrl.SelectNext()
		return m, nil

	case SelectPreviousIntent:
		m.ctrl.SelectPrevious()
		if m.listFocused && m.ctrl.Active() < 0 {
			// nothing left to focus in the list
			m.listFocused = false
			return m, m.input.Focus()
		}
		return m, nil

	case HitIntent:
		events := m.ctrl.Hit()
		m.syncInput()
		m.listFocused = false
		return m, tea.Batch(m.input.Focus(), emit(events))

	case ListItemBlurIntent:
		m.listFocused = false
		if msg.Related == m.inputEl {
			return m, m.Focus()
		}
		return m, emit(m.ctrl.Blur(msg.Related))

	case pastedMsg:
		m.insert(msg.text)
		return m, emit(m.ctrl.Paste(msg.text))

	case pasteErrMsg:
		log.Warn("clipboard read failed", "err", msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	var (
		events []domain.DomainEvent
		cmds   []tea.Cmd
	)

	switch {
	case msg.Paste:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		events = m.ctrl.Paste(string(msg.Runes))

	case key.Matches(msg, m.keys.Next):
		m.ctrl.SelectNext()

	case key.Matches(msg, m.keys.Prev):
		m.ctrl.SelectPrevious()

	case key.Matches(msg, m.keys.Hit):
		events = m.ctrl.Hit()
		m.syncInput()

	case key.Matches(msg, m.keys.Escape):
		events = m.ctrl.Escape()
		m.syncInput()
		if !m.ctrl.Focused() {
			m.input.Blur()
		}

	case key.Matches(msg, m.keys.FocusList):
		if !m.listShown() {
			break
		}
		if m.ctrl.Active() < 0 {
			m.ctrl.SelectNext()
		}
		events = m.ctrl.Blur(m.itemElement(m.ctrl.Active()))
		m.input.Blur()
		m.listFocused = true

	case key.Matches(msg, m.keys.Paste):
		cmds = append(cmds, m.readClipboard)

	default:
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		if after := m.input.Value(); after != before {
			events = m.ctrl.Input(after)
		}
	}

	events = append(events, m.ctrl.KeyUp(msg.String())...)
	cmds = append(cmds, emit(events))
	return m, tea.Batch(cmds...)
}

func (m Model) readClipboard() tea.Msg {
	text, err := m.opts.Clipboard()
	if err != nil {
		return pasteErrMsg{err: err}
	}
	return pastedMsg{text: text}
}

// insert puts text at the cursor without recomputing suggestions
func (m *Model) insert(text string) {
	value := []rune(m.input.Value())
	pos := m.input.Position()
	if pos > len(value) {
		pos = len(value)
	}
	next := string(value[:pos]) + text + string(value[pos:])
	m.input.SetValue(next)
	m.input.SetCursor(pos + len([]rune(text)))
}

func (m *Model) syncInput() {
	if m.input.Value() != m.ctrl.Query() {
		m.input.SetValue(m.ctrl.Query())
		m.input.CursorEnd()
	}
}

func (m *Model) itemElement(i int) *typeahead.Element {
	for len(m.itemEls) <= i {
		id := fmt.Sprintf("item-%d", len(m.itemEls))
		m.itemEls = append(m.itemEls, typeahead.NewElement(id, m.listEl))
	}
	return m.itemEls[i]
}

func (m *Model) focusedItem() ListItem {
	return ListItem{
		Element: m.itemElement(max(m.ctrl.Active(), 0)),
		input:   m.inputEl,
		keys:    m.keys,
	}
}

// View implements tea.Model
func (m Model) View() string {
	parts := []string{m.header()}
	if list := m.renderList(); list != "" {
		parts = append(parts, list)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// header renders the label and the input group above the list
func (m Model) header() string {
	var parts []string
	if m.opts.InputName != "" {
		parts = append(parts, m.styles.Label.Render(m.opts.InputName))
	}
	group := m.styles.InputGroupStyle(m.opts.Size).Width(m.opts.Width)
	parts = append(parts, group.Render(m.input.View()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// itemAt maps a cell of the rendered widget, relative to its top-left
// corner, to an index into the visible suggestions
func (m Model) itemAt(x, y int) (int, bool) {
	if !m.listShown() || x < 0 || x >= m.opts.Width {
		return -1, false
	}
	view := m.ctrl.View()
	start, end := m.viewport.Window(m.ctrl.Active(), len(view.Items))
	row := y - lipgloss.Height(m.header())
	if start > 0 {
		row-- // "more above" marker
	}
	if row < 0 || start+row >= end {
		return -1, false
	}
	return start + row, true
}

func (m Model) renderList() string {
	view := m.ctrl.View()
	if !view.Open {
		return ""
	}

	listStyle := m.styles.List.Width(m.opts.Width)
	if view.ShowNoResults {
		return listStyle.Render(m.styles.NoResults.Render(view.NoResults))
	}

	textWidth := m.opts.Width - 4
	start, end := m.viewport.Window(m.ctrl.Active(), len(view.Items))
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, m.styles.Dim.Render(views.MoreAbove(start)))
	}
	for i := start; i < end; i++ {
		entry := view.Items[i]
		active := i == m.ctrl.Active()
		if m.opts.Accessible {
			marker := "  "
			if active {
				marker = "> "
			}
			lines = append(lines, marker+views.Truncate(entry.ScreenReaderText, textWidth))
			continue
		}

		classes := typeahead.ItemClasses(typeahead.ItemStyle{
			TextVariant:       m.opts.TextVariant,
			BackgroundVariant: m.opts.BackgroundVariant,
			Resolver:          m.opts.BackgroundVariantResolver,
			Active:            active,
		}, entry.Data)
		st := m.styles.ItemStyle(classes)
		text := views.Truncate(entry.Text, textWidth)
		lines = append(lines, views.Highlight(text, m.ctrl.Query(), st, m.styles.Highlight))
	}
	if hidden := len(view.Items) - end; hidden > 0 {
		lines = append(lines, m.styles.Dim.Render(views.MoreBelow(hidden)))
	}
	return listStyle.Render(strings.Join(lines, "\n"))
}
