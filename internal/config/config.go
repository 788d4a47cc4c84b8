package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"typeahead/internal/eventbus"
)

// ProjectFileName is looked up in the working directory before the user config
const ProjectFileName = ".typeahead.toml"

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	Items      ItemsSettings  `toml:"items"`
	Widget     WidgetSettings `toml:"widget"`
	UISettings UISettings     `toml:"ui"`
}

// ItemsSettings describes where candidates come from and how they are read
type ItemsSettings struct {
	Path                   string `toml:"path"`
	SerializerField        string `toml:"serializer_field"`
	ScreenReaderField      string `toml:"screen_reader_field"`
	BackgroundVariantField string `toml:"background_variant_field"`
}

// WidgetSettings mirrors the widget's configuration surface
type WidgetSettings struct {
	InputName         string `toml:"input_name"`
	Placeholder       string `toml:"placeholder"`
	InitialQuery      string `toml:"initial_query"`
	Size              string `toml:"size"` // "", "sm" or "lg"
	TextVariant       string `toml:"text_variant"`
	BackgroundVariant string `toml:"background_variant"`
	NoResultsInfo     string `toml:"no_results_info"`
	NoResultsTemplate string `toml:"no_results_template"` // text/template, {{.Query}}
	Matcher           string `toml:"matcher"`             // substring, fuzzy or prefix
	MaxMatches        int    `toml:"max_matches"`
	MinMatchingChars  int    `toml:"min_matching_chars"`
	ShowOnFocus       bool   `toml:"show_on_focus"`
	ShowAllResults    bool   `toml:"show_all_results"`
	DisableSort       bool   `toml:"disable_sort"`
	AutoSelectFirst   bool   `toml:"auto_select_first"`
	ClampAtFirst      bool   `toml:"clamp_at_first"`
	Width             int    `toml:"width"`
	MaxVisible        int    `toml:"max_visible"` // rows shown before scrolling, 0 for all
}

// UISettings represents host application configuration
type UISettings struct {
	ExitOnSelect bool `toml:"exit_on_select"`
	Accessible   bool `toml:"accessible"`
	HistorySize  int  `toml:"history_size"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the user-level config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "typeahead", "config.toml")
}

// ResolvePath prefers an explicit path, then a project file in the working
// directory, then DefaultPath
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if wd, err := os.Getwd(); err == nil {
		project := filepath.Join(wd, ProjectFileName)
		if _, err := os.Stat(project); err == nil {
			return project
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Warn("cannot read project config", "path", project, "err", err)
		}
	}
	return DefaultPath()
}

// NewConfigService creates a config service bound to path.
// An empty path means DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults if it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("No config at %s, using defaults", cs.filePath)
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Widget: WidgetSettings{
			InputName:        "query",
			Placeholder:      "Type to search",
			Matcher:          "substring",
			MaxMatches:       10,
			MinMatchingChars: 2,
			Width:            60,
			MaxVisible:       8,
		},
		UISettings: UISettings{
			ExitOnSelect: true,
			HistorySize:  20,
		},
	}
}
