// Package config holds application configuration: where the bookmarks
// file, module catalog, and SWORD directory live, the display locale,
// and the deferred-save delay. Stored as JSON under the user config
// directory.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/FocuswithJustin/Versemark/core/errors"
	"github.com/FocuswithJustin/Versemark/core/verse"
)

// DefaultSaveDelay is the deferred-save debounce interval.
const DefaultSaveDelay = 30 * time.Second

// Config is the application configuration.
type Config struct {
	// BookmarksPath is the bookmarks XML file. Empty means the
	// per-user default.
	BookmarksPath string `json:"bookmarks_path,omitempty"`
	// CatalogPath is the SQLite module catalog. Empty means the
	// per-user default.
	CatalogPath string `json:"catalog_path,omitempty"`
	// SwordDir is the SWORD installation to scan for modules.
	SwordDir string `json:"sword_dir,omitempty"`
	// Locale selects the display language for scripture keys.
	Locale string `json:"locale,omitempty"`
	// SaveDelayMS is the deferred-save delay in milliseconds.
	SaveDelayMS int `json:"save_delay_ms,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Locale:      string(verse.English),
		SaveDelayMS: int(DefaultSaveDelay / time.Millisecond),
	}
}

// DefaultPath returns the per-user config file path.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(base, "versemark", "config.json"), nil
}

// Load reads the config file at path, filling unset fields with
// defaults. A missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewIO("read config", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewParse("JSON", path, err.Error())
	}
	if cfg.Locale == "" {
		cfg.Locale = string(verse.English)
	}
	if cfg.SaveDelayMS <= 0 {
		cfg.SaveDelayMS = int(DefaultSaveDelay / time.Millisecond)
	}
	return cfg, nil
}

// Save writes the config as indented JSON, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewIO("create config dir", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.NewIO("write config", path, err)
	}
	return nil
}

// SaveDelay returns the deferred-save delay as a duration.
func (c *Config) SaveDelay() time.Duration {
	return time.Duration(c.SaveDelayMS) * time.Millisecond
}

// DisplayLocale returns the configured locale, defaulting to English
// for values without a locale table.
func (c *Config) DisplayLocale() verse.Locale {
	switch verse.Locale(c.Locale) {
	case verse.German:
		return verse.German
	case verse.Spanish:
		return verse.Spanish
	}
	return verse.English
}
