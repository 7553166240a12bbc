package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger" yaml:"logger"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Storage StorageConfig `toml:"storage" yaml:"storage"`

	// Unrecognized lists TOML keys the file set but nothing reads. The logger
	// is not up while loading, so main reports them.
	Unrecognized []string `toml:"-" yaml:"-"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	HistorySize     int    `toml:"history_size" yaml:"history_size"`
	ScrollOff       int    `toml:"scroll_off" yaml:"scroll_off"`
	SystemClipboard bool   `toml:"system_clipboard" yaml:"system_clipboard"`
	Theme           string `toml:"theme" yaml:"theme"`           // name of a theme in ThemesDir
	ThemesDir       string `toml:"themes_dir" yaml:"themes_dir"` // empty: DefaultThemesDir
	ThemeFile       string `toml:"theme_file" yaml:"theme_file"` // overrides Theme
}

// StorageConfig selects where the document is kept.
type StorageConfig struct {
	Backend string `toml:"backend" yaml:"backend"` // file, sqlite or memory
	Path    string `toml:"path" yaml:"path"`       // directory for file, database file for sqlite
	Key     string `toml:"key" yaml:"key"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			HistorySize:     DefaultHistorySize,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
		},
		Storage: StorageConfig{
			Backend: DefaultBackend,
			Key:     DefaultDocumentKey,
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/tidemark/config.toml, or "" when
// the user config dir is unknown.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// DefaultThemesDir returns the themes directory next to the default config
// file, or "" when the user config dir is unknown.
func DefaultThemesDir() string {
	configPath := DefaultConfigPath()
	if configPath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(configPath), ThemesDirName)
}

// DefaultStoragePath returns where a backend keeps data when no path is set.
func DefaultStoragePath(backend string) string {
	base := "."
	if configDir, err := os.UserConfigDir(); err == nil {
		base = filepath.Join(configDir, AppName)
	}
	if backend == "sqlite" {
		return filepath.Join(base, SQLiteFileName)
	}
	return filepath.Join(base, DocumentsDirName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file '%s': %w", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		metadata, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
		for _, key := range metadata.Undecoded() {
			cfg.Unrecognized = append(cfg.Unrecognized, key.String())
		}
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.HistorySize <= 0 {
		c.Editor.HistorySize = defaults.Editor.HistorySize
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Editor.ThemesDir == "" {
		c.Editor.ThemesDir = DefaultThemesDir()
	}
	if c.Storage.Path == "" && c.Storage.Backend != "memory" {
		c.Storage.Path = DefaultStoragePath(c.Storage.Backend)
	}
}

// Load builds a configuration from defaults, the config file (the default
// location when configFilePath is empty) and flag overrides, then validates it.
// On a file error the returned config still holds defaults plus flags.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}

	var fileErr error
	if effectivePath != "" {
		fileCfg := NewDefaultConfig()
		if fileErr = loadFromFile(effectivePath, fileCfg); fileErr == nil {
			cfg = fileCfg
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, fileErr
}
