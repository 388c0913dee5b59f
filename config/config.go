// Package config locates and loads arbor's settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Scripts ScriptsConfig `mapstructure:"scripts"`
	Debug   DebugConfig   `mapstructure:"debug"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // Log file used while the terminal UI owns the screen
}

// UIConfig holds input handling settings.
type UIConfig struct {
	AccessKeys    bool `mapstructure:"access_keys"`
	TabNavigation bool `mapstructure:"tab_navigation"`
}

// QueueConfig holds event queue settings.
type QueueConfig struct {
	Limit int `mapstructure:"limit"`
}

// ScriptsConfig holds Lua script settings.
type ScriptsConfig struct {
	Init  string `mapstructure:"init"`
	Watch bool   `mapstructure:"watch"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	Monitor  bool          `mapstructure:"monitor"`
	Interval time.Duration `mapstructure:"interval"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// ARBOR_, e.g. ARBOR_LOG_LEVEL=debug. path overrides the default file
// location; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(Dir(), "arbor.log"))
	v.SetDefault("ui.access_keys", true)
	v.SetDefault("ui.tab_navigation", true)
	v.SetDefault("queue.limit", 50000)
	v.SetDefault("scripts.init", InitFile())
	v.SetDefault("scripts.watch", false)
	v.SetDefault("debug.monitor", false)
	v.SetDefault("debug.interval", 5*time.Second)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("ARBOR_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARBOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// SlogLevel returns the configured level, or info if it is not a level
// name slog understands.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Dir returns the arbor configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "arbor")
}

// InitFile returns the path to init.lua
func InitFile() string {
	return filepath.Join(Dir(), "init.lua")
}
