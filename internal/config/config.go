// Package config handles configuration file loading and parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Position represents where the widget button is anchored on screen.
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionBottomLeft,
		PositionBottomRight,
	}
}

// Config is the battray configuration.
// Loaded from ~/.config/battray/battray.toml
type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Battery  BatteryConfig  `toml:"battery"`
	Settings SettingsConfig `toml:"settings"`
	Log      LogConfig      `toml:"log"`
}

// DisplayConfig contains widget placement settings.
type DisplayConfig struct {
	Position Position `toml:"position"` // "top-right", "top-left", etc.
	MarginX  int      `toml:"margin_x"` // Pixels from the horizontal screen edge
	MarginY  int      `toml:"margin_y"` // Pixels from the vertical screen edge
	IconSize int      `toml:"icon_size"`
}

// BatteryConfig contains low-battery warning thresholds, in percent.
// A threshold of 0 disables that warning.
type BatteryConfig struct {
	LowThreshold      float64 `toml:"low_threshold"`
	CriticalThreshold float64 `toml:"critical_threshold"`
}

// SettingsConfig contains the command spawned by the "Power Settings" button.
type SettingsConfig struct {
	Command string `toml:"command"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Position: PositionTopRight,
			MarginX:  10,
			MarginY:  10,
			IconSize: 16,
		},
		Battery: BatteryConfig{
			LowThreshold:      20,
			CriticalThreshold: 10,
		},
		Settings: SettingsConfig{
			Command: "cosmic-settings",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "battray", "battray.toml"), nil
}

// Load loads the configuration from the default path.
// If the file doesn't exist, returns the default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from the given path. Missing file means
// defaults; a present file overlays the defaults field by field.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validPos := false
	for _, p := range ValidPositions() {
		if c.Display.Position == p {
			validPos = true
			break
		}
	}
	if !validPos {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Display.Position, ValidPositions())
	}

	if c.Display.MarginX < 0 || c.Display.MarginY < 0 {
		return fmt.Errorf("margins must be non-negative, got %d/%d", c.Display.MarginX, c.Display.MarginY)
	}
	if c.Display.IconSize < 8 || c.Display.IconSize > 128 {
		return fmt.Errorf("icon_size must be between 8 and 128, got %d", c.Display.IconSize)
	}

	for name, v := range map[string]float64{
		"low_threshold":      c.Battery.LowThreshold,
		"critical_threshold": c.Battery.CriticalThreshold,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %v", name, v)
		}
	}
	if c.Battery.CriticalThreshold > c.Battery.LowThreshold && c.Battery.LowThreshold > 0 {
		return fmt.Errorf("critical_threshold %v must not exceed low_threshold %v",
			c.Battery.CriticalThreshold, c.Battery.LowThreshold)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}
