// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/mdnav/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`    // Embed logger config under [logger] table
	Navigator NavigatorConfig `toml:"navigator"` // Navigation behavior settings
}

// NavigatorConfig holds navigation behavior settings.
type NavigatorConfig struct {
	// AudioIndication plays a tone when browse mode toggles instead of a
	// spoken announcement.
	AudioIndication bool `toml:"audio_indication"`

	// TrapNonCommandGestures swallows unbound single letters while browse
	// mode is on, so stray keys never reach the document.
	TrapNonCommandGestures bool `toml:"trap_non_command_gestures"`

	// SystemClipboard routes the copy commands through the OS clipboard.
	SystemClipboard bool `toml:"system_clipboard"`

	// WebApps is the browser allow-list for flat text navigation.
	WebApps []string `toml:"web_apps"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means stderr
		},
		Navigator: NavigatorConfig{
			AudioIndication:        AudioIndication,
			TrapNonCommandGestures: TrapNonCommandGestures,
			SystemClipboard:        SystemClipboard,
			WebApps:                DefaultWebApps,
		},
	}
}

// loadFromFile decodes a TOML file over cfg, so absent keys keep their
// defaults. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if len(c.Navigator.WebApps) == 0 {
		c.Navigator.WebApps = defaults.Navigator.WebApps
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig() // Start with defaults

		// Determine effective config file path
		effectivePath := configFilePath
		if effectivePath == "" { // If flag not set, try default location
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			} else {
				effectivePath = "" // Cannot load default path
			}
		}

		if effectivePath != "" {
			if err := loadFromFile(effectivePath, cfg); err != nil {
				loadErr = err
			}
		}

		// Apply flag overrides (if flags were parsed)
		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()

		loadedConfig = cfg // Store globally
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		// This indicates a programming error - LoadConfig should be called in main.
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
