package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"placegrip/internal/domain"
	"placegrip/internal/eventbus"
	"placegrip/internal/geometry"
	"placegrip/internal/panel"
)

// FileName is the config file looked up in the working directory
const FileName = ".placegrip.toml"

// Config represents the application configuration
type Config struct {
	Version          int        `toml:"version"`
	PlacesFile       string     `toml:"places_file"` // empty = built-in sample
	Query            string     `toml:"query"`
	LocationLabel    string     `toml:"location_label"`
	TitleNoun        string     `toml:"title_noun"`
	RatingFilter     *float64   `toml:"rating_filter,omitempty"`
	InitialExpansion string     `toml:"initial_expansion"`
	Fit              FitConfig  `toml:"fit"`
	UISettings       UISettings `toml:"ui"`
}

// FitConfig holds camera fitting parameters, in degrees
type FitConfig struct {
	Padding    float64 `toml:"padding"`
	SingleSpan float64 `toml:"single_span"`
	MinSpan    float64 `toml:"min_span"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDistance  bool    `toml:"show_distance"`
	MidPanelRatio float64 `toml:"mid_panel_ratio"` // share of the height the panel takes at mid
}

// FitOptions converts the fit section, falling back to defaults for
// non-positive values
func (c *Config) FitOptions() geometry.FitOptions {
	opts := geometry.DefaultFitOptions()
	if c.Fit.Padding > 0 {
		opts.Padding = c.Fit.Padding
	}
	if c.Fit.SingleSpan > 0 {
		opts.SingleSpan = c.Fit.SingleSpan
	}
	if c.Fit.MinSpan > 0 {
		opts.MinSpan = c.Fit.MinSpan
	}
	return opts
}

// Expansion parses InitialExpansion
func (c *Config) Expansion() (panel.ExpansionLevel, error) {
	return panel.ParseExpansion(c.InitialExpansion)
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	if c.RatingFilter != nil && !domain.ValidRating(*c.RatingFilter) {
		return fmt.Errorf("rating_filter %.1f out of range 0-5", *c.RatingFilter)
	}
	if _, err := c.Expansion(); err != nil {
		return fmt.Errorf("initial_expansion: %w", err)
	}
	if r := c.UISettings.MidPanelRatio; !(r >= 0 && r < 1) {
		return fmt.Errorf("ui.mid_panel_ratio %.2f out of range [0,1)", r)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted at dir
func NewConfigService(dir string) ConfigService {
	return &configService{
		filePath: filepath.Join(dir, FileName),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(dir string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(dir).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := readConfig(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	cs.publishLoaded(cs.filePath)
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	cs.publishLoaded(path)
	return cfg, nil
}

func (cs *configService) publishLoaded(path string) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}
}

func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
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
	fit := geometry.DefaultFitOptions()
	return &Config{
		Version:          1,
		Query:            "Restaurants",
		LocationLabel:    "Dubai",
		TitleNoun:        "places",
		InitialExpansion: panel.Collapsed.String(),
		Fit: FitConfig{
			Padding:    fit.Padding,
			SingleSpan: fit.SingleSpan,
			MinSpan:    fit.MinSpan,
		},
		UISettings: UISettings{
			ShowDistance:  true,
			MidPanelRatio: 0.4,
		},
	}
}
