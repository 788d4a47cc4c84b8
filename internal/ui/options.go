package ui

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"

	"typeahead/internal/config"
	"typeahead/internal/items"
	"typeahead/internal/typeahead"
	"typeahead/internal/ui/widget"
)

// WidgetOptions translates configuration into widget options
func WidgetOptions(cfg *config.Config) (widget.Options, error) {
	w := cfg.Widget

	matcher, ok := typeahead.MatcherByName(w.Matcher, w.DisableSort)
	if !ok {
		return widget.Options{}, fmt.Errorf("unknown matcher %q", w.Matcher)
	}

	noResults := typeahead.NoResultsInfo{Message: w.NoResultsInfo}
	if w.NoResultsTemplate != "" {
		tmpl, err := template.New("no_results").Parse(w.NoResultsTemplate)
		if err != nil {
			return widget.Options{}, fmt.Errorf("parse no_results_template: %w", err)
		}
		noResults.Template = renderNoResults(tmpl)
	}

	return widget.Options{
		Serializer:                items.FieldSerializer(cfg.Items.SerializerField),
		ScreenReaderSerializer:    items.FieldSerializer(cfg.Items.ScreenReaderField),
		BackgroundVariantResolver: items.FieldResolver(cfg.Items.BackgroundVariantField),
		TextVariant:               w.TextVariant,
		BackgroundVariant:         w.BackgroundVariant,
		InputName:                 w.InputName,
		Placeholder:               w.Placeholder,
		Size:                      w.Size,
		NoResults:                 noResults,
		Engine: &typeahead.Engine{
			Matcher:          matcher,
			MaxMatches:       w.MaxMatches,
			MinMatchingChars: w.MinMatchingChars,
			ShowOnFocus:      w.ShowOnFocus,
			ShowAllResults:   w.ShowAllResults,
		},
		AutoSelectFirst: w.AutoSelectFirst,
		ClampAtFirst:    w.ClampAtFirst,
		Width:           w.Width,
		MaxVisible:      w.MaxVisible,
		Accessible:      cfg.UISettings.Accessible,
	}, nil
}

func renderNoResults(tmpl *template.Template) func(string) string {
	return func(query string) string {
		var b strings.Builder
		if err := tmpl.Execute(&b, struct{ Query string }{query}); err != nil {
			log.Warn("no results template failed", "err", err)
			return ""
		}
		return b.String()
	}
}
