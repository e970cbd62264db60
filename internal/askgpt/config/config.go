package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/longkey1/askgpt/internal/askgpt"
	"github.com/longkey1/askgpt/internal/askgpt/history"
	"github.com/longkey1/askgpt/internal/openai"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "ASKGPT"

	DefaultEndpoint = openai.DefaultEndpoint
)

// Config holds the settings for a single askgpt run
type Config struct {
	Dir           string        `toml:"-" mapstructure:"-"` // resolved config directory
	Model         string        `toml:"model" mapstructure:"model"`
	Endpoint      string        `toml:"endpoint" mapstructure:"endpoint"`
	HistoryWindow time.Duration `toml:"history_window" mapstructure:"history_window"`
	HistoryLimit  int           `toml:"history_limit" mapstructure:"history_limit"`
	Logging       Logging       `toml:"logging" mapstructure:"logging"`
}

// Logging holds the logger settings
type Logging struct {
	Level      string `toml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format     string `toml:"format" mapstructure:"format"` // console or json
	File       string `toml:"file" mapstructure:"file"`     // empty disables the log file
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Model:         askgpt.DefaultModel,
		Endpoint:      DefaultEndpoint,
		HistoryWindow: history.DefaultWindow,
		HistoryLimit:  history.DefaultLimit,
		Logging: Logging{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// NewViper returns a viper instance with defaults and environment bindings
// applied. Keys map to ASKGPT_* variables with "." replaced by "_".
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := NewDefaultConfig()
	v.SetDefault("config_dir", "")
	v.SetDefault("model", d.Model)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("history_window", d.HistoryWindow)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)

	return v
}

// Load resolves the config directory, reads config.toml from it if present
// and returns the merged configuration.
func Load(v *viper.Viper) (*Config, error) {
	dir, err := ResolveDir(v)
	if err != nil {
		return nil, err
	}

	v.SetConfigType("toml")
	v.SetConfigName("config")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Dir = dir

	if cfg.Logging.File != "" {
		cfg.Logging.File = ResolvePath(dir, cfg.Logging.File)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is not configured. Set it in config file (model) or environment variable (%s_MODEL)", EnvPrefix)
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint is not configured. Set it in config file (endpoint) or environment variable (%s_ENDPOINT)", EnvPrefix)
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("history_window must be positive (got %s)", c.HistoryWindow)
	}
	// Each run appends a user and an assistant entry.
	if c.HistoryLimit < 2 {
		return fmt.Errorf("history_limit must be at least 2 (got %d)", c.HistoryLimit)
	}
	return nil
}

func (c *Config) APIKeyPath() string      { return filepath.Join(c.Dir, "apikey.txt") }
func (c *Config) PrimingPath() string     { return filepath.Join(c.Dir, "prompt.json") }
func (c *Config) PrimingTOMLPath() string { return filepath.Join(c.Dir, "prompt.toml") }
func (c *Config) HistoryPath() string     { return filepath.Join(c.Dir, "history.jsonl") }
