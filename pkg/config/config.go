package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/sfs-cli/pkg/i18n"
)

type Config struct {
	// Asset root; empty means auto-detect on the device
	RootPath string `yaml:"root_path" env:"SFS_ROOT"`

	// Listing
	DefaultSort string `yaml:"default_sort"`
	ReverseSort bool   `yaml:"reverse_sort"`

	// UI Settings
	ColorTheme    string `yaml:"color_theme" env:"SFS_COLOR_THEME"`
	Language      string `yaml:"language" env:"SFS_LANGUAGE"`
	ConfirmDelete bool   `yaml:"confirm_delete"`
	TableWidth    int    `yaml:"table_width"`

	// Logging
	LogLevel         string `yaml:"log_level" env:"SFS_LOG_LEVEL"`
	LogRetentionDays int    `yaml:"log_retention_days"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Reports; empty means the data directory
	ChartOutput string `yaml:"chart_output"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		RootPath:         "",
		DefaultSort:      "none",
		ReverseSort:      false,
		ColorTheme:       "auto",
		Language:         "en",
		ConfirmDelete:    true,
		TableWidth:       0,
		LogLevel:         "info",
		LogRetentionDays: 7,
		WatchDebounceMS:  500,
		ChartOutput:      "",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize re-applies defaults to missing values and replaces invalid
// enum values with their default
func (c *Config) normalize() {
	def := DefaultConfig()

	if !isValidSort(c.DefaultSort) {
		c.DefaultSort = def.DefaultSort
	}
	if !isValidTheme(c.ColorTheme) {
		c.ColorTheme = def.ColorTheme
	}
	if _, err := i18n.ParseTag(c.Language); err != nil {
		c.Language = def.Language
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogRetentionDays <= 0 {
		c.LogRetentionDays = def.LogRetentionDays
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = def.WatchDebounceMS
	}
	if c.TableWidth < 0 {
		c.TableWidth = 0
	}
}

// ApplyEnv overlays SFS_* environment variables on top of the file values
func ApplyEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.normalize()
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Keys returns the settable keys in declaration order
func Keys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("yaml"); tag != "" {
			keys = append(keys, strings.Split(tag, ",")[0])
		}
	}
	return keys
}

// Set assigns a single key from its string form, e.g. ("confirm_delete", "false").
// Unknown keys and invalid values are rejected and leave c unchanged.
func Set(c *Config, key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}

	updated := *c
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &updated,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any{key: value}); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := updated.validate(key); err != nil {
		return err
	}
	*c = updated
	return nil
}

// Get returns the string form of a single key
func Get(c *Config, key string) (string, error) {
	values := map[string]any{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "yaml",
		Result:  &values,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(c); err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	value, ok := values[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return fmt.Sprint(value), nil
}

func (c *Config) validate(key string) error {
	switch key {
	case "default_sort":
		if !isValidSort(c.DefaultSort) {
			return fmt.Errorf("invalid default_sort %q (expected none, name, size or type)", c.DefaultSort)
		}
	case "color_theme":
		if !isValidTheme(c.ColorTheme) {
			return fmt.Errorf("invalid color_theme %q (expected auto, dark or light)", c.ColorTheme)
		}
	case "language":
		if _, err := i18n.ParseTag(c.Language); err != nil {
			return err
		}
	case "log_level":
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
			return fmt.Errorf("invalid log_level %q", c.LogLevel)
		}
	case "log_retention_days", "watch_debounce_ms":
		if c.LogRetentionDays <= 0 || c.WatchDebounceMS <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	case "table_width":
		if c.TableWidth < 0 {
			return fmt.Errorf("table_width must not be negative")
		}
	}
	return nil
}

func isValidSort(s string) bool {
	return slices.Contains([]string{"none", "name", "size", "type"}, s)
}

func isValidTheme(s string) bool {
	return slices.Contains([]string{"auto", "dark", "light"}, s)
}
