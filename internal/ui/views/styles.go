package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"typeahead/internal/typeahead"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	InputGroup  lipgloss.Style
	List        lipgloss.Style
	Item        lipgloss.Style
	ItemActive  lipgloss.Style
	Highlight   lipgloss.Style
	NoResults   lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		InputGroup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		List: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, true, true).
			BorderForeground(lipgloss.Color("238")),
		Item:        lipgloss.NewStyle().Padding(0, 1),
		ItemActive:  lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		NoResults:   lipgloss.NewStyle().Padding(0, 1).Faint(true).Italic(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
	}
}

// variantColors maps bootstrap-style variant names to terminal colors
var variantColors = map[string]lipgloss.Color{
	"primary":   lipgloss.Color("33"),  // blue
	"secondary": lipgloss.Color("241"), // gray
	"success":   lipgloss.Color("78"),  // green
	"danger":    lipgloss.Color("203"), // red
	"warning":   lipgloss.Color("214"), // yellow
	"info":      lipgloss.Color("51"),  // cyan
	"light":     lipgloss.Color("252"),
	"dark":      lipgloss.Color("236"),
}

// ItemStyle turns a list item's class tokens into a lipgloss style.
// Unknown variants are ignored.
func (s *Styles) ItemStyle(classes []string) lipgloss.Style {
	st := s.Item
	for _, class := range classes {
		switch {
		case class == "active":
			st = st.Inherit(s.ItemActive).Bold(true)
		case strings.HasPrefix(class, "text-"):
			if c, ok := variantColors[strings.TrimPrefix(class, "text-")]; ok {
				st = st.Foreground(c)
			}
		case strings.HasPrefix(class, "list-group-item-"):
			if c, ok := variantColors[strings.TrimPrefix(class, "list-group-item-")]; ok {
				st = st.Background(c)
			}
		}
	}
	return st
}

// InputGroupStyle sizes the input box from its structural classes
func (s *Styles) InputGroupStyle(size string) lipgloss.Style {
	st := s.InputGroup
	for _, class := range strings.Fields(typeahead.InputGroupClasses(size)) {
		switch class {
		case "input-group-lg":
			st = st.Padding(1, 2)
		case "input-group-sm":
			st = st.Padding(0).Border(lipgloss.HiddenBorder(), false, false, true, false)
		}
	}
	return st
}

// Truncate shortens s to fit width terminal cells
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Highlight renders text with the first case-insensitive occurrence of
// query emphasized
func Highlight(text, query string, base, emphasis lipgloss.Style) string {
	start, end := matchSpan(text, query)
	if start < 0 {
		return base.Render(text)
	}
	runes := []rune(text)
	inner := base.UnsetPadding()
	hl := emphasis.Inherit(inner)
	left := strings.Repeat(" ", base.GetPaddingLeft())
	right := strings.Repeat(" ", base.GetPaddingRight())
	return inner.Render(left+string(runes[:start])) +
		hl.Render(string(runes[start:end])) +
		inner.Render(string(runes[end:])+right)
}

// matchSpan returns the rune span of query within text, or -1
func matchSpan(text, query string) (int, int) {
	if query == "" {
		return -1, -1
	}
	runes := []rune(text)
	lower := []rune(strings.ToLower(text))
	q := []rune(strings.ToLower(query))
	if len(lower) != len(runes) || len(q) > len(lower) {
		return -1, -1
	}
	for i := 0; i+len(q) <= len(lower); i++ {
		if string(lower[i:i+len(q)]) == string(q) {
			return i, i + len(q)
		}
	}
	return -1, -1
}
