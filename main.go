package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"typeahead/internal/config"
	"typeahead/internal/eventbus"
	"typeahead/internal/items"
	"typeahead/internal/logger"
	"typeahead/internal/logic"
	"typeahead/internal/ui"
)

// flags holds the command line, which overrides file configuration
type flags struct {
	items        string
	config       string
	field        string
	srField      string
	variantField string
	matcher      string
	query        string
	noResults    string
	size         string
	logLevel     string
	print        bool
	saveConfig   bool
	accessible   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var f flags
	fs := pflag.CommandLine
	fs.StringVarP(&f.items, "items", "i", "", "file with candidate items (.txt, .json, .yaml, .toml)")
	fs.StringVarP(&f.config, "config", "c", "", "config file (default ./"+config.ProjectFileName+", then the user config)")
	fs.StringVar(&f.field, "field", "", "record field shown as item text")
	fs.StringVar(&f.srField, "sr-field", "", "record field read by screen readers")
	fs.StringVar(&f.variantField, "variant-field", "", "record field holding a background variant")
	fs.StringVar(&f.matcher, "matcher", "", "matching strategy: substring, fuzzy or prefix")
	fs.StringVarP(&f.query, "query", "q", "", "initial query")
	fs.StringVar(&f.noResults, "no-results", "", "message shown when nothing matches")
	fs.StringVar(&f.size, "size", "", "input size: sm or lg")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&f.print, "print", false, "print the selected text on exit")
	fs.BoolVar(&f.saveConfig, "save-config", false, "write the effective configuration before starting")
	fs.BoolVar(&f.accessible, "accessible", false, "render screen-reader text without styling")
	pflag.Parse()

	if f.items == "" && pflag.NArg() > 0 {
		f.items = pflag.Arg(0)
	}

	// Set up logging; the terminal belongs to the UI
	closer, err := logger.OpenFile("typeahead.log", logger.ParseLevel(f.logLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logger.Discard()
	} else {
		defer closer.Close()
	}

	bus := eventbus.New()
	defer bus.Close()
	subscribeLogging(bus)

	configSvc := config.NewConfigServiceWithBus(config.ResolvePath(f.config), bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Warn("using default configuration", "path", configSvc.Path(), "err", err)
		cfg = config.DefaultConfig()
	}
	applyFlags(cfg, f)

	if f.saveConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			return 1
		}
	}

	if cfg.Items.Path == "" {
		fmt.Fprintln(os.Stderr, "No items: pass --items <file> or set items.path in the config")
		return 2
	}

	store := logic.NewMemoryItemStore()
	data, err := items.Load(cfg.Items.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading items: %v\n", err)
		return 1
	}
	store.Replace(cfg.Items.Path, data)
	bus.Publish(eventbus.ItemsLoadedEvent{Source: cfg.Items.Path, Count: len(data)})

	history := logic.NewMemoryHistoryStore(cfg.UISettings.HistorySize)

	model, err := ui.NewModel(bus, cfg, store, history, items.Load)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	if os.Getenv("TYPEAHEAD_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	log.Info("starting UI", "items", cfg.Items.Path, "count", len(data))
	if _, err := p.Run(); err != nil {
		log.Error("error running program", "err", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	log.Info("UI exited normally")

	if sel, ok := model.Selection(); ok && f.print {
		fmt.Println(sel.Text)
	}
	return 0
}

func applyFlags(cfg *config.Config, f flags) {
	changed := pflag.CommandLine.Changed
	if f.items != "" {
		cfg.Items.Path = f.items
	}
	if changed("field") {
		cfg.Items.SerializerField = f.field
	}
	if changed("sr-field") {
		cfg.Items.ScreenReaderField = f.srField
	}
	if changed("variant-field") {
		cfg.Items.BackgroundVariantField = f.variantField
	}
	if changed("matcher") {
		cfg.Widget.Matcher = f.matcher
	}
	if changed("query") {
		cfg.Widget.InitialQuery = f.query
	}
	if changed("no-results") {
		cfg.Widget.NoResultsInfo = f.noResults
	}
	if changed("size") {
		cfg.Widget.Size = f.size
	}
	if changed("accessible") {
		cfg.UISettings.Accessible = f.accessible
	}
}

// subscribeLogging records every notification in the log
func subscribeLogging(bus eventbus.EventBus) {
	types := []eventbus.EventType{
		eventbus.EventHit, eventbus.EventQueryChanged, eventbus.EventFocus, eventbus.EventBlur,
		eventbus.EventPaste, eventbus.EventKeyUp, eventbus.EventSubmit, eventbus.EventItemsLoaded,
		eventbus.EventError, eventbus.EventConfigLoaded, eventbus.EventConfigSaved,
	}
	for _, t := range types {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			switch ev := e.(type) {
			case eventbus.ErrorEvent:
				log.Error(ev.Message, "err", ev.Err)
			case eventbus.KeyUpEvent:
				log.Debug("key", "key", ev.Key)
			default:
				log.Info("event", "type", e.Type(), "event", fmt.Sprintf("%+v", e))
			}
		})
	}
}
