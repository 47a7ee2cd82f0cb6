package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	Tabs      map[string]TabPolicy `mapstructure:"tabs" yaml:"tabs"`
	History   HistoryConfig        `mapstructure:"history" yaml:"history"`
	Highlight HighlightConfig      `mapstructure:"highlight" yaml:"highlight"`
	Clipboard ClipboardConfig      `mapstructure:"clipboard" yaml:"clipboard"`
	LogFile   string               `mapstructure:"log_file" yaml:"log_file"`
	Debug     bool                 `mapstructure:"debug" yaml:"debug"`
}

// TabPolicy controls tab expansion on load and retabbing on save for files
// whose name ends with the policy's key.
type TabPolicy struct {
	Size  int  `mapstructure:"size" yaml:"size"`
	Retab bool `mapstructure:"retab" yaml:"retab"`
}

// HistoryConfig holds search history limits and storage
type HistoryConfig struct {
	MaxQueries      int    `mapstructure:"max_queries" yaml:"max_queries"`
	MaxReplacements int    `mapstructure:"max_replacements" yaml:"max_replacements"`
	Path            string `mapstructure:"path" yaml:"path"`
}

// HighlightConfig holds token cache sizing and the colour style
type HighlightConfig struct {
	WindowSize int    `mapstructure:"window_size" yaml:"window_size"`
	MaxWindows int    `mapstructure:"max_windows" yaml:"max_windows"`
	Style      string `mapstructure:"style" yaml:"style"`
}

// ClipboardConfig controls mirroring of cut lines to the system clipboard
type ClipboardConfig struct {
	System bool `mapstructure:"system" yaml:"system"`
}

// DefaultTabKey is the tab policy used when no suffix matches.
const DefaultTabKey = "default"

// LoadConfig loads configuration from YAML file and environment variables
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/exo")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadConfigFromPath loads configuration from an explicit file path.
func LoadConfigFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

// Default returns the built-in configuration without touching the filesystem
// or the environment.
func Default() *Config {
	v := viper.New()
	applyDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		// defaults are static and always valid
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix("EXO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	applyDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// user tables extend the defaults instead of replacing them
	tabs := defaultTabs()
	for k, p := range cfg.Tabs {
		tabs[strings.ToLower(k)] = p
	}
	cfg.Tabs = tabs

	if cfg.History.Path == "" {
		cfg.History.Path = defaultHistoryPath()
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	for name, p := range cfg.Tabs {
		if p.Size < 1 || p.Size > 16 {
			return fmt.Errorf("tabs.%s.size must be between 1 and 16, got %d", name, p.Size)
		}
	}
	if _, ok := cfg.Tabs[DefaultTabKey]; !ok {
		return fmt.Errorf("tabs.%s must be set", DefaultTabKey)
	}

	if cfg.History.MaxQueries < 1 {
		return fmt.Errorf("history.max_queries must be >= 1, got %d", cfg.History.MaxQueries)
	}
	if cfg.History.MaxReplacements < 1 {
		return fmt.Errorf("history.max_replacements must be >= 1, got %d", cfg.History.MaxReplacements)
	}

	if cfg.Highlight.WindowSize < 1 {
		return fmt.Errorf("highlight.window_size must be >= 1, got %d", cfg.Highlight.WindowSize)
	}
	if cfg.Highlight.MaxWindows < 1 {
		return fmt.Errorf("highlight.max_windows must be >= 1, got %d", cfg.Highlight.MaxWindows)
	}
	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("history.max_queries", 128)
	v.SetDefault("history.max_replacements", 128)
	v.SetDefault("history.path", "")

	v.SetDefault("highlight.window_size", 750)
	v.SetDefault("highlight.max_windows", 32)
	v.SetDefault("highlight.style", "monokai")

	v.SetDefault("clipboard.system", false)

	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
}

// defaultTabs returns the built-in tab table. Keys are lower-cased file name
// suffixes; viper lower-cases user keys the same way.
func defaultTabs() map[string]TabPolicy {
	tabs := map[string]TabPolicy{
		DefaultTabKey: {Size: 4},
		"tsv":         {Size: 8, Retab: true},
		"makefile":    {Size: 4, Retab: true},
	}
	for _, ext := range []string{"c", "h", "cc", "c++", "h++", "cpp", "hpp", "cxx", "hxx"} {
		tabs[ext] = TabPolicy{Size: 2}
	}
	return tabs
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "exo", "history.db")
}
