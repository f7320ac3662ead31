package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the per-directory config file looked up by the CLI
const FileName = ".multiselect.toml"

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Locale  string         `toml:"locale"`
	LogFile string         `toml:"log_file"`
	Output  string         `toml:"output"` // json, yaml or toml
	Widget  WidgetSettings `toml:"widget"`
}

// WidgetSettings are the defaults applied to every widget the CLI builds
type WidgetSettings struct {
	IDField         string   `toml:"id_field"`
	LabelField      string   `toml:"label_field"`
	FilteringFields []string `toml:"filtering_fields"`
	Search          bool     `toml:"search"`
	SelectAll       bool     `toml:"select_all"`
	SelectAllLabels []string `toml:"select_all_labels,omitempty"`
	ButtonLabel     string   `toml:"button_label,omitempty"`
	LabelVisible    bool     `toml:"label_visible"`
	Hint            string   `toml:"hint,omitempty"`
	Legend          string   `toml:"legend,omitempty"`
	CloseDelayMS    int      `toml:"close_delay_ms"`
	MaxVisibleRows  int      `toml:"max_visible_rows"`
}

// CloseDelay returns the configured close delay
func (w WidgetSettings) CloseDelay() time.Duration {
	return time.Duration(w.CloseDelayMS) * time.Millisecond
}

// Validate checks values the widget cannot work with
func (c *Config) Validate() error {
	switch c.Output {
	case "", "json", "yaml", "toml":
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	if c.Widget.CloseDelayMS < 0 {
		return fmt.Errorf("close_delay_ms must not be negative, got %d", c.Widget.CloseDelayMS)
	}
	if c.Widget.MaxVisibleRows < 0 {
		return fmt.Errorf("max_visible_rows must not be negative, got %d", c.Widget.MaxVisibleRows)
	}
	if n := len(c.Widget.SelectAllLabels); n != 0 && n != 2 {
		return fmt.Errorf("select_all_labels needs exactly 2 entries, got %d", n)
	}
	return nil
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
	filePath string
}

// NewConfigService creates a config service reading FileName in dir
func NewConfigService(dir string) ConfigService {
	return &configService{filePath: filepath.Join(dir, FileName)}
}

// NewConfigServiceForFile creates a config service bound to an explicit file
func NewConfigServiceForFile(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults when the file does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
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
	return &Config{
		Version: 1,
		Locale:  "fr",
		LogFile: "multiselect.log",
		Output:  "json",
		Widget: WidgetSettings{
			IDField:         "id",
			LabelField:      "label",
			FilteringFields: []string{"label"},
			Search:          true,
			SelectAll:       true,
			LabelVisible:    true,
			CloseDelayMS:    300,
			MaxVisibleRows:  10,
		},
	}
}
