package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, PositionTopRight, cfg.Display.Position)
	assert.Equal(t, 10, cfg.Display.MarginX)
	assert.Equal(t, 10, cfg.Display.MarginY)
	assert.Equal(t, 16, cfg.Display.IconSize)
	assert.Equal(t, 20.0, cfg.Battery.LowThreshold)
	assert.Equal(t, 10.0, cfg.Battery.CriticalThreshold)
	assert.Equal(t, "cosmic-settings", cfg.Settings.Command)
	assert.Equal(t, "info", cfg.Log.Level)

	require.NoError(t, cfg.Validate())
}

func TestLoadFile_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadFile("/nonexistent/path/battray.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "battray.toml")

	content := `
[display]
position = "bottom-left"
margin_x = 4
margin_y = 2
icon_size = 24

[battery]
low_threshold = 25.0
critical_threshold = 5.0

[settings]
command = "gnome-control-center power"

[log]
level = "debug"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, PositionBottomLeft, cfg.Display.Position)
	assert.Equal(t, 4, cfg.Display.MarginX)
	assert.Equal(t, 2, cfg.Display.MarginY)
	assert.Equal(t, 24, cfg.Display.IconSize)
	assert.Equal(t, 25.0, cfg.Battery.LowThreshold)
	assert.Equal(t, 5.0, cfg.Battery.CriticalThreshold)
	assert.Equal(t, "gnome-control-center power", cfg.Settings.Command)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "battray.toml")

	content := `
[battery]
low_threshold = 30.0
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Battery.LowThreshold)
	assert.Equal(t, PositionTopRight, cfg.Display.Position)
	assert.Equal(t, "cosmic-settings", cfg.Settings.Command)
}

func TestLoadFile_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "battray.toml")

	cases := map[string]string{
		"bad position":        "[display]\nposition = \"center\"\n",
		"bad icon size":       "[display]\nicon_size = 4\n",
		"threshold too big":   "[battery]\nlow_threshold = 150.0\n",
		"inverted thresholds": "[battery]\nlow_threshold = 10.0\ncritical_threshold = 20.0\n",
		"bad log level":       "[log]\nlevel = \"trace\"\n",
		"not toml":            "{\"display\": {}}",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_ZeroThresholdDisablesWarning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Battery.LowThreshold = 0
	cfg.Battery.CriticalThreshold = 5
	require.NoError(t, cfg.Validate())
}
