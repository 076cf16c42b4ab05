// Package config provides configuration management for cinder.
//
// Configuration is loaded from a YAML file via viper, with environment
// variable overrides (CINDER_ prefix) and sensible defaults for every
// setting. Call SetDefaults before reading config, then Load to obtain
// a validated Config.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure for cinder
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Flash   FlashConfig   `mapstructure:"flash"`
	Events  EventsConfig  `mapstructure:"events"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// UIConfig controls the terminal interface
type UIConfig struct {
	// RefreshRateMs is the interval between update ticks in milliseconds
	RefreshRateMs int `mapstructure:"refresh_rate_ms"`
	// Theme selects the color theme ("dark", "light", "none")
	Theme string `mapstructure:"theme"`
	// ShowEventLog displays the recent-event pane in the main view
	ShowEventLog bool `mapstructure:"show_event_log"`
	// MaxEventLogLines caps the number of events retained in the event pane
	MaxEventLogLines int `mapstructure:"max_event_log_lines"`
}

// FlashConfig controls write behavior
type FlashConfig struct {
	// BlockSizeKB is the write block size in kilobytes
	BlockSizeKB int `mapstructure:"block_size_kb"`
	// Verify re-reads written data and compares checksums after flashing
	Verify bool `mapstructure:"verify"`
	// UnmountBeforeWrite unmounts any mounted volumes on the target first
	UnmountBeforeWrite bool `mapstructure:"unmount_before_write"`
	// EjectAfterWrite ejects the device once the write (and verify) completes
	EjectAfterWrite bool `mapstructure:"eject_after_write"`
}

// EventsConfig controls event delivery behavior
type EventsConfig struct {
	// StrictQueries makes a query with zero or multiple responders an error
	StrictQueries bool `mapstructure:"strict_queries"`
}

// WatchConfig controls the config file watcher
type WatchConfig struct {
	// Enabled reloads configuration when the config file changes on disk
	Enabled bool `mapstructure:"enabled"`
	// DebounceMs coalesces rapid file events within this window
	DebounceMs int `mapstructure:"debounce_ms"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	// Dir is the log directory; empty means ConfigDir()/logs
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with all default values
func Default() *Config {
	return &Config{
		UI: UIConfig{
			RefreshRateMs:    100,
			Theme:            "dark",
			ShowEventLog:     true,
			MaxEventLogLines: 200,
		},
		Flash: FlashConfig{
			BlockSizeKB:        1024,
			Verify:             true,
			UnmountBeforeWrite: true,
			EjectAfterWrite:    false,
		},
		Events: EventsConfig{
			StrictQueries: true,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 250,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// RefreshRate returns the UI refresh interval as a time.Duration
func (c *UIConfig) RefreshRate() time.Duration {
	return time.Duration(c.RefreshRateMs) * time.Millisecond
}

// BlockSize returns the write block size in bytes
func (c *FlashConfig) BlockSize() int {
	return c.BlockSizeKB * 1024
}

// Debounce returns the watch debounce window as a time.Duration
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// LogDir returns the effective log directory
func (c *LoggingConfig) LogDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// UI defaults
	viper.SetDefault("ui.refresh_rate_ms", defaults.UI.RefreshRateMs)
	viper.SetDefault("ui.theme", defaults.UI.Theme)
	viper.SetDefault("ui.show_event_log", defaults.UI.ShowEventLog)
	viper.SetDefault("ui.max_event_log_lines", defaults.UI.MaxEventLogLines)

	// Flash defaults
	viper.SetDefault("flash.block_size_kb", defaults.Flash.BlockSizeKB)
	viper.SetDefault("flash.verify", defaults.Flash.Verify)
	viper.SetDefault("flash.unmount_before_write", defaults.Flash.UnmountBeforeWrite)
	viper.SetDefault("flash.eject_after_write", defaults.Flash.EjectAfterWrite)

	// Events defaults
	viper.SetDefault("events.strict_queries", defaults.Events.StrictQueries)

	// Watch defaults
	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults on error
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cinder")
	}
	// Fall back to ~/.config/cinder
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cinder"
	}
	return filepath.Join(home, ".config", "cinder")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
