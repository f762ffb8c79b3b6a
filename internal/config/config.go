// Package config loads Lexiz settings from defaults, a config file and
// LEXIZ_* environment variables, in increasing priority.
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
	Hint     HintConfig     `mapstructure:"hint"`
	Export   ExportConfig   `mapstructure:"export"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Lessons  LessonsConfig  `mapstructure:"lessons"`
}

// HintConfig tunes room hint escalation.
type HintConfig struct {
	IdleDelay      time.Duration `mapstructure:"idle_delay"`
	MisTapsToForce int           `mapstructure:"mistaps_to_force"`
}

// ExportConfig says where performance reports are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings. An empty File logs to stderr.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// SpeechConfig names the TTS command. Empty disables speech.
type SpeechConfig struct {
	Command string `mapstructure:"command"`
}

// LessonsConfig points at the static lesson catalog. Empty uses the built-in
// template only.
type LessonsConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration. path overrides LEXIZ_CONFIG; when neither is set
// the default config file is used if it exists. Env var overrides use prefix
// LEXIZ_, for example LEXIZ_HINT_IDLE_DELAY=3s.
func Load(path string) (Config, error) {
	v := viper.New()

	dataDir := DataDir()
	v.SetDefault("hint.idle_delay", 5*time.Second)
	v.SetDefault("hint.mistaps_to_force", 2)
	v.SetDefault("export.dir", filepath.Join(dataDir, "reports"))
	v.SetDefault("database.path", filepath.Join(dataDir, "lexiz.db"))
	v.SetDefault("log.file", filepath.Join(dataDir, "lexiz.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("speech.command", "")
	v.SetDefault("lessons.dir", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("LEXIZ_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LEXIZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the runtime cannot use.
func (c Config) Validate() error {
	if c.Hint.IdleDelay <= 0 {
		return fmt.Errorf("config: hint.idle_delay must be positive, got %s", c.Hint.IdleDelay)
	}
	if c.Hint.MisTapsToForce < 1 {
		return fmt.Errorf("config: hint.mistaps_to_force must be at least 1, got %d", c.Hint.MisTapsToForce)
	}
	return nil
}

// DataDir resolves the data directory in priority order:
// 1. $XDG_DATA_HOME/lexiz
// 2. ~/.local/share/lexiz
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "lexiz-data"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lexiz")
}

// ConfigDir resolves $XDG_CONFIG_HOME/lexiz or ~/.config/lexiz.
func ConfigDir() string {
	cfgHome := os.Getenv("XDG_CONFIG_HOME")
	if cfgHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		cfgHome = filepath.Join(home, ".config")
	}
	return filepath.Join(cfgHome, "lexiz")
}
