package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	UI       UIConfig       `mapstructure:"ui"`
	Edit     EditConfig     `mapstructure:"edit"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig selects which expression list is edited.
type StoreConfig struct {
	ID   string `mapstructure:"id"`
	Seed bool   `mapstructure:"seed"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ColumnTitle     string `mapstructure:"column_title"`
	EmptyText       string `mapstructure:"empty_text"`
	DefaultListType string `mapstructure:"default_list_type"`
	LabelsPath      string `mapstructure:"labels_path"`
}

// EditConfig tunes the edit session.
type EditConfig struct {
	TeardownDelay time.Duration `mapstructure:"teardown_delay"`
}

// LogConfig points the debug log somewhere other than the terminal.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from file and env. Env var overrides use prefix EXPRTABLE_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "exprtable", "exprtable.db"))
	v.SetDefault("store.id", "default")
	v.SetDefault("store.seed", true)
	v.SetDefault("ui.column_title", "Expression")
	v.SetDefault("ui.empty_text", "No expressions yet. Press a to add one.")
	v.SetDefault("ui.default_list_type", "WHITE")
	v.SetDefault("ui.labels_path", "")
	v.SetDefault("edit.teardown_delay", "200ms")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "exprtable", "debug.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("EXPRTABLE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "exprtable"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("EXPRTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// read config file if present; an explicit EXPRTABLE_CONFIG must exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
