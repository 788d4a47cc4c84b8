package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/logic"
	"typeahead/internal/ui/views"
	"typeahead/internal/ui/widget"
)

const (
	statusTimeout = 3 * time.Second
	recentShown   = 3
	appTitle      = "typeahead"
)

// Loader reads candidate items from a source path
type Loader func(path string) ([]domain.RawItem, error)

// KeyMap holds the application-level bindings on top of the widget's
type KeyMap struct {
	Widget widget.KeyMap
	Help   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard application bindings
func DefaultKeyMap(w widget.KeyMap) KeyMap {
	return KeyMap{
		Widget: w,
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload items"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.Widget.ShortHelp(), k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Widget.FullHelp(), []key.Binding{k.Help, k.Reload, k.Quit})
}

// Sections groups the bindings for the help pager
func (k KeyMap) Sections() []HelpSection {
	w := k.Widget
	return []HelpSection{
		{Title: "Suggestions", Bindings: []key.Binding{w.Next, w.Prev, w.Hit}},
		{Title: "Focus", Bindings: []key.Binding{w.FocusList, w.FocusInput, w.Escape}},
		{Title: "Editing", Bindings: []key.Binding{w.Paste}},
		{Title: "Other", Bindings: []key.Binding{k.Reload, k.Help, k.Quit}},
	}
}

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	items   logic.ItemStore
	history logic.HistoryStore
	loader  Loader

	widget       widget.Model
	keys         KeyMap
	help         help.Model
	styles       *views.Styles
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	width       int
	height      int
	status      string
	statusErr   bool
	inPagerMode bool // tracks if we're currently in pager mode

	// query before the latest change, which is what the user typed when a
	// hit rewrites the input
	query     string
	prevQuery string
	selection *domain.Selection

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over the items currently in store
func NewModel(bus eventbus.EventBus, cfg *config.Config, store logic.ItemStore, history logic.HistoryStore, loader Loader) (*Model, error) {
	opts, err := WidgetOptions(cfg)
	if err != nil {
		return nil, err
	}
	styles := views.NewStyles()
	opts.Styles = styles

	w, err := widget.New(store.Items(), opts)
	if err != nil {
		return nil, err
	}
	initial := cfg.Widget.InitialQuery
	if initial != "" {
		w.SetValue(initial)
	}

	return &Model{
		bus:          bus,
		config:       cfg,
		items:        store,
		history:      history,
		loader:       loader,
		widget:       w,
		keys:         DefaultKeyMap(w.KeyMap()),
		help:         help.New(),
		styles:       styles,
		helpRenderer: NewHelpRenderer(),
		query:        initial,
	}, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Selection returns the committed selection, if any
func (m *Model) Selection() (domain.Selection, bool) {
	if m.selection == nil {
		return domain.Selection{}, false
	}
	return *m.selection, true
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.widget.Init(), m.widget.Focus())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m, m.fetchHelpPager(m.helpRenderer.RenderHelpContent(m.keys.Sections()))
		case key.Matches(msg, m.keys.Reload):
			return m, m.reloadItems()
		}
		var cmds []tea.Cmd
		if !m.widget.Focused() {
			// typing after leaving the widget brings focus back
			cmds = append(cmds, m.widget.Focus())
		}
		var cmd tea.Cmd
		m.widget, cmd = m.widget.Update(msg)
		return m, tea.Batch(append(cmds, cmd)...)

	case tea.MouseMsg:
		// widget coordinates start below the title
		msg.Y -= lipgloss.Height(m.styles.Title.Render(appTitle))
		var cmd tea.Cmd
		m.widget, cmd = m.widget.Update(msg)
		return m, cmd

	case widget.EventMsg:
		return m, m.handleEvent(msg.Event)

	case itemsLoadedMsg:
		return m, m.handleItemsLoaded(msg)

	case helpPagerMsg:
		if msg.err != nil {
			log.Error("help pager failed", "err", msg.err)
			return m, m.setStatus(fmt.Sprintf("help unavailable: %v", msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.widget, cmd = m.widget.Update(msg)
	return m, cmd
}

// handleEvent publishes a widget notification and reacts to it
func (m *Model) handleEvent(event domain.DomainEvent) tea.Cmd {
	if m.bus != nil {
		m.bus.Publish(event)
	}

	switch e := event.(type) {
	case domain.QueryChangedEvent:
		m.prevQuery, m.query = m.query, e.Query

	case domain.HitEvent:
		return m.commit(domain.Selection{Text: e.Entry.Text, Query: m.prevQuery})

	case domain.SubmitEvent:
		if e.Query == "" {
			return nil
		}
		return m.commit(domain.Selection{Text: e.Query, Query: e.Query})

	case domain.PasteEvent:
		return m.widget.Refresh()
	}
	return nil
}

func (m *Model) commit(sel domain.Selection) tea.Cmd {
	m.selection = &sel
	if m.history != nil {
		m.history.Add(sel)
	}
	log.Info("selection committed", "text", sel.Text, "query", sel.Query)
	if m.config.UISettings.ExitOnSelect {
		return tea.Quit
	}
	return m.setStatus(fmt.Sprintf("selected %q", sel.Text), false)
}

// reloadItems re-reads the item source in the background
func (m *Model) reloadItems() tea.Cmd {
	source := m.items.Source()
	if source == "" || m.loader == nil {
		return m.setStatus("no item source to reload", true)
	}
	loader := m.loader
	return func() tea.Msg {
		data, err := loader(source)
		return itemsLoadedMsg{source: source, items: data, err: err}
	}
}

func (m *Model) handleItemsLoaded(msg itemsLoadedMsg) tea.Cmd {
	err := msg.err
	if err == nil {
		err = m.widget.SetData(msg.items)
	}
	if err != nil {
		log.Error("failed to load items", "source", msg.source, "err", err)
		if m.bus != nil {
			m.bus.Publish(eventbus.ErrorEvent{Message: "load items", Err: err})
		}
		return m.setStatus(fmt.Sprintf("reload failed: %v", err), true)
	}

	m.items.Replace(msg.source, msg.items)
	if m.bus != nil {
		m.bus.Publish(eventbus.ItemsLoadedEvent{Source: msg.source, Count: len(msg.items)})
	}
	return m.setStatus(fmt.Sprintf("loaded %d items from %s", len(msg.items), msg.source), false)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil || m.helpOps == nil {
		return m.setStatus("help pager unavailable", true)
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	parts := []string{
		m.styles.Title.Render(appTitle),
		m.widget.View(),
	}

	var recent []domain.Selection
	if m.history != nil {
		recent = m.history.Recent(recentShown)
	}
	if len(recent) > 0 {
		names := make([]string, len(recent))
		for i, sel := range recent {
			names[i] = sel.Text
		}
		parts = append(parts, m.styles.Dim.Render("recent: "+strings.Join(names, " · ")))
	}

	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = style.Inherit(m.styles.StatusError).Foreground(m.styles.StatusError.GetForeground())
		}
		parts = append(parts, style.Render(m.status))
	}

	parts = append(parts, m.styles.Help.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
