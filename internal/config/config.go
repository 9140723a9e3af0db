package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Combat CombatConfig `mapstructure:"combat"`
	Search SearchConfig `mapstructure:"search"`
	Log    LogConfig    `mapstructure:"log"`
	Render RenderConfig `mapstructure:"render"`
	UI     UIConfig     `mapstructure:"ui"`
	MapGen MapGenConfig `mapstructure:"mapgen"`
}

// CombatConfig holds battle mechanics configuration
type CombatConfig struct {
	StartingHP int `mapstructure:"starting_hp"`
	BasePower  int `mapstructure:"base_power"`
	RoundCap   int `mapstructure:"round_cap"`
}

// SearchConfig holds power search settings
type SearchConfig struct {
	Floor    int `mapstructure:"floor"`
	MaxPower int `mapstructure:"max_power"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// RenderConfig holds text rendering settings
type RenderConfig struct {
	HPColumn bool `mapstructure:"hp_column"`
}

// UIConfig holds viewer configuration
type UIConfig struct {
	Window WindowConfig `mapstructure:"window"`
	Game   UIGameConfig `mapstructure:"game"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// UIGameConfig holds viewer playback settings
type UIGameConfig struct {
	TileSize      int `mapstructure:"tile_size"`
	RoundInterval int `mapstructure:"round_interval"`
}

// MapGenConfig holds map generation settings
type MapGenConfig struct {
	Width          int   `mapstructure:"width"`
	Height         int   `mapstructure:"height"`
	WallRatio      int   `mapstructure:"wall_ratio"`
	UnitsPerSide   int   `mapstructure:"units_per_side"`
	MinUnitSpacing int   `mapstructure:"min_unit_spacing"`
	Seed           int64 `mapstructure:"seed"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Combat defaults
	v.SetDefault("combat.starting_hp", 200)
	v.SetDefault("combat.base_power", 3)
	v.SetDefault("combat.round_cap", 10000)

	// Power search defaults
	v.SetDefault("search.floor", 0) // 0 means start at the base power
	v.SetDefault("search.max_power", 200)

	// Logging defaults
	v.SetDefault("log.level", "info")

	// Rendering defaults
	v.SetDefault("render.hp_column", true)

	// UI defaults
	v.SetDefault("ui.window.width", 960)
	v.SetDefault("ui.window.height", 720)
	v.SetDefault("ui.window.title", "Grid Combat Viewer")
	v.SetDefault("ui.game.tile_size", 32)
	v.SetDefault("ui.game.round_interval", 30)

	// Map generation defaults
	v.SetDefault("mapgen.width", 16)
	v.SetDefault("mapgen.height", 16)
	v.SetDefault("mapgen.wall_ratio", 10)
	v.SetDefault("mapgen.units_per_side", 4)
	v.SetDefault("mapgen.min_unit_spacing", 4)
	v.SetDefault("mapgen.seed", 0) // 0 means seed from the clock
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/grid-combat")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("GCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If we have a specific config path and it doesn't exist, that's ok - use defaults
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	// Try to find environment-specific config
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	// Re-unmarshal with merged config
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate battle mechanics
	if c.Combat.StartingHP <= 0 {
		return fmt.Errorf("combat.starting_hp must be positive")
	}
	if c.Combat.BasePower <= 0 {
		return fmt.Errorf("combat.base_power must be positive")
	}
	if c.Combat.RoundCap <= 0 {
		return fmt.Errorf("combat.round_cap must be positive")
	}

	// Validate power search settings
	if c.Search.Floor < 0 {
		return fmt.Errorf("search.floor must be non-negative")
	}
	if c.Search.MaxPower <= 0 {
		return fmt.Errorf("search.max_power must be positive")
	}
	if c.Search.Floor > c.Search.MaxPower {
		return fmt.Errorf("search.floor must not exceed search.max_power")
	}

	// Validate UI configuration
	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Game.TileSize <= 0 {
		return fmt.Errorf("ui.game.tile_size must be positive")
	}
	if c.UI.Game.RoundInterval <= 0 {
		return fmt.Errorf("ui.game.round_interval must be positive")
	}

	// Validate map generation settings
	if c.MapGen.Width < 5 || c.MapGen.Height < 5 {
		return fmt.Errorf("mapgen dimensions must be at least 5 to fit walls and units")
	}
	if c.MapGen.WallRatio <= 0 {
		return fmt.Errorf("mapgen.wall_ratio must be positive")
	}
	if c.MapGen.UnitsPerSide <= 0 {
		return fmt.Errorf("mapgen.units_per_side must be positive")
	}
	if c.MapGen.MinUnitSpacing < 1 {
		return fmt.Errorf("mapgen.min_unit_spacing must be at least 1")
	}

	return nil
}
