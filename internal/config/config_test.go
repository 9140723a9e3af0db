package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
combat:
  starting_hp: 250
  base_power: 5
search:
  max_power: 50
ui:
  window:
    width: 1024
    height: 768
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err = Init(configFile)
	require.NoError(t, err)

	// Test loaded values
	c := Get()
	assert.Equal(t, 250, c.Combat.StartingHP)
	assert.Equal(t, 5, c.Combat.BasePower)
	assert.Equal(t, 50, c.Search.MaxPower)
	assert.Equal(t, 1024, c.UI.Window.Width)
	assert.Equal(t, 768, c.UI.Window.Height)
}

func TestInitWithDefaults(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize with non-existent config (should use defaults)
	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	// Defaults should be in place
	c := Get()
	assert.Equal(t, 200, c.Combat.StartingHP)
	assert.Equal(t, 3, c.Combat.BasePower)
	assert.Equal(t, 10000, c.Combat.RoundCap)
	assert.Equal(t, 200, c.Search.MaxPower)
	assert.Equal(t, "info", c.Log.Level)
	assert.True(t, c.Render.HPColumn)
	assert.Equal(t, 16, c.MapGen.Width)
}

func TestEnvironmentVariables(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Set environment variables
	os.Setenv("GCS_COMBAT_STARTING_HP", "300")
	os.Setenv("GCS_SEARCH_MAX_POWER", "64")
	defer os.Unsetenv("GCS_COMBAT_STARTING_HP")
	defer os.Unsetenv("GCS_SEARCH_MAX_POWER")

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Environment variables should override
	c := Get()
	assert.Equal(t, 300, c.Combat.StartingHP)
	assert.Equal(t, 64, c.Search.MaxPower)
}

func TestSet(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Set values
	Set("combat.round_cap", 500)
	Set("ui.window.width", 1280)

	// Check updated values
	c := Get()
	assert.Equal(t, 500, c.Combat.RoundCap)
	assert.Equal(t, 1280, c.UI.Window.Width)
}

func TestGetHelpers(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Set some values
	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)

	// Test getters
	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
}

func TestLoadEnvironmentConfig(t *testing.T) {
	// Create temporary config files
	tmpDir := t.TempDir()

	// Base config
	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
combat:
  starting_hp: 200
search:
  max_power: 200
`
	err := os.WriteFile(baseConfig, []byte(baseContent), 0644)
	require.NoError(t, err)

	// Environment-specific config
	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
combat:
  starting_hp: 150
search:
  max_power: 80
log:
  level: "error"
`
	err = os.WriteFile(envConfig, []byte(envContent), 0644)
	require.NoError(t, err)

	// Change to temp directory
	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	// Reset global state
	cfg = nil
	v = nil

	// Initialize base config
	err = Init(baseConfig)
	require.NoError(t, err)

	// Load environment config
	err = LoadEnvironmentConfig("prod")
	require.NoError(t, err)

	// Check merged values
	c := Get()
	assert.Equal(t, 150, c.Combat.StartingHP) // Overridden
	assert.Equal(t, 80, c.Search.MaxPower)    // Overridden
	assert.Equal(t, "error", c.Log.Level)     // New value
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero starting hp",
			mutate:  func(c *Config) { c.Combat.StartingHP = 0 },
			wantErr: "combat.starting_hp",
		},
		{
			name:    "negative base power",
			mutate:  func(c *Config) { c.Combat.BasePower = -1 },
			wantErr: "combat.base_power",
		},
		{
			name:    "floor above ceiling",
			mutate:  func(c *Config) { c.Search.Floor = 300 },
			wantErr: "search.floor",
		},
		{
			name:    "tiny map",
			mutate:  func(c *Config) { c.MapGen.Width = 3 },
			wantErr: "mapgen dimensions",
		},
		{
			name:    "zero round interval",
			mutate:  func(c *Config) { c.UI.Game.RoundInterval = 0 },
			wantErr: "ui.game.round_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Start from defaults
			cfg = nil
			v = nil
			require.NoError(t, Init("/non/existent/path/config.yaml"))

			c := *Get()
			tt.mutate(&c)

			err := Validate(&c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
