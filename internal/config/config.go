// Package config handles trackline configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration structure for trackline.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Timeline visual geometry
	Timeline TimelineConfig `yaml:"timeline" mapstructure:"timeline"`

	// Export settings for PNG snapshots
	Export ExportConfig `yaml:"export" mapstructure:"export"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`
}

// GlobalConfig contains global trackline settings.
type GlobalConfig struct {
	// DataDir is where trackline writes exports by default
	// (default: ~/.local/share/trackline).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ConfigDir is where config files are stored (default: ~/.config/trackline).
	ConfigDir string `yaml:"config_dir" mapstructure:"config_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// TimelineConfig contains the lane and event-bar geometry.
type TimelineConfig struct {
	// TrackHeight is the lane height in pixels.
	TrackHeight float64 `yaml:"track_height" mapstructure:"track_height"`

	// TrackSpacing is the vertical gap between lanes in pixels.
	TrackSpacing float64 `yaml:"track_spacing" mapstructure:"track_spacing"`

	// EventMinWidth is the smallest event bar width in pixels.
	EventMinWidth float64 `yaml:"event_min_width" mapstructure:"event_min_width"`

	// EventMaxWidth is the largest event bar width in pixels.
	EventMaxWidth float64 `yaml:"event_max_width" mapstructure:"event_max_width"`

	// EventHeight is the event bar height in pixels.
	EventHeight float64 `yaml:"event_height" mapstructure:"event_height"`
}

// ExportConfig contains PNG snapshot settings.
type ExportConfig struct {
	// Dir is the output directory. Empty means Global.DataDir.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Width and Height are the logical surface dimensions in pixels.
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`

	// Scale is the device pixel ratio applied to the backing store.
	Scale float64 `yaml:"scale" mapstructure:"scale"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme is the color theme (default, dark, light).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// FilterDebounce is how long to wait after the last keystroke before
	// applying a table filter.
	FilterDebounce time.Duration `yaml:"filter_debounce" mapstructure:"filter_debounce"`

	// MouseEnabled turns on mouse tracking for the timeline surface.
	MouseEnabled bool `yaml:"mouse_enabled" mapstructure:"mouse_enabled"`

	// SampleData seeds the store with demo data when it starts empty.
	SampleData bool `yaml:"sample_data" mapstructure:"sample_data"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Global: GlobalConfig{
			DataDir:   filepath.Join(homeDir, ".local", "share", "trackline"),
			ConfigDir: filepath.Join(homeDir, ".config", "trackline"),
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
		Timeline: TimelineConfig{
			TrackHeight:   80,
			TrackSpacing:  20,
			EventMinWidth: 4,
			EventMaxWidth: 200,
			EventHeight:   24,
		},
		Export: ExportConfig{
			Width:  1600,
			Height: 900,
			Scale:  2,
		},
		TUI: TUIConfig{
			Theme:          "default",
			FilterDebounce: 300 * time.Millisecond,
			MouseEnabled:   true,
			SampleData:     true,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeline.TrackHeight <= 0 {
		return fmt.Errorf("timeline.track_height must be positive")
	}
	if c.Timeline.TrackSpacing < 0 {
		return fmt.Errorf("timeline.track_spacing must not be negative")
	}
	if c.Timeline.EventMinWidth <= 0 {
		return fmt.Errorf("timeline.event_min_width must be positive")
	}
	if c.Timeline.EventMaxWidth < c.Timeline.EventMinWidth {
		return fmt.Errorf("timeline.event_max_width must be at least event_min_width")
	}
	if c.Timeline.EventHeight <= 0 || c.Timeline.EventHeight > c.Timeline.TrackHeight {
		return fmt.Errorf("timeline.event_height must be positive and fit inside track_height")
	}

	if c.Export.Width < 1 || c.Export.Height < 1 {
		return fmt.Errorf("export.width and export.height must be at least 1")
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive")
	}

	if c.TUI.FilterDebounce < 0 {
		return fmt.Errorf("tui.filter_debounce must not be negative")
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Global.DataDir,
		c.Global.ConfigDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ExportDir returns the directory PNG snapshots are written to.
func (c *Config) ExportDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}
	return c.Global.DataDir
}
