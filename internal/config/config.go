// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
	Tour     TourConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds file-logging settings.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat string `mapstructure:"date_format"`
	Timezone   string
	Bell       bool
}

// TourConfig holds guided-tour settings.
type TourConfig struct {
	Enabled      bool
	StartDelayMS int `mapstructure:"start_delay_ms"`
}

// Load reads configuration from file and env. Env var overrides use prefix SPROUT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "sprout", "sprout.db"))
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "sprout", "sprout.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.date_format", "Mon 2 Jan")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.bell", true)
	v.SetDefault("tour.enabled", true)
	v.SetDefault("tour.start_delay_ms", 400)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SPROUT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "sprout"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPROUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("SPROUT_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "sprout", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.bell", cfg.UI.Bell)
	v.Set("tour.enabled", cfg.Tour.Enabled)
	v.Set("tour.start_delay_ms", cfg.Tour.StartDelayMS)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
