// Package config provides YAML-based configuration loading for docbridge.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	// Log holds logging configuration
	Log LogConfig `mapstructure:"log"`

	// Store holds the document store configuration
	Store StoreConfig `mapstructure:"store"`

	// Source configures how stored documents are decoded
	Source SourceConfig `mapstructure:"source"`

	// Sink configures how records are encoded and stored
	Sink SinkConfig `mapstructure:"sink"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: list of outputs: stdout, stderr, or file paths
	Outputs []string `mapstructure:"outputs"`

	// Rotation controls file rotation when writing to files
	Rotation RotationConfig `mapstructure:"rotation"`
	// Development toggles development-friendly logging options
	Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// StoreConfig locates the document store.
type StoreConfig struct {
	// Path of the store directory, ":memory:" for an in-memory store
	Path string `mapstructure:"path"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				Enable:     false,
				Filename:   "logs/docbridge.log",
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
		Store: StoreConfig{Path: "./data"},
		Source: SourceConfig{
			Format:  "auto",
			Workers: 4,
		},
		Sink: SinkConfig{
			Format:    "json",
			Path:      "/out",
			BatchSize: 100,
		},
	}
}

// Load reads configuration from the provided path (if non-empty),
// otherwise it searches common locations and supports environment overrides.
// Environment variables use the prefix DOCBRIDGE and `.`/`-` are replaced with `_`.
// Example: DOCBRIDGE_SOURCE_FORMAT=json
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DOCBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed defaults for viper so env-only configs work
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("source.format", cfg.Source.Format)
	v.SetDefault("source.delimiter", cfg.Source.Delimiter)
	v.SetDefault("source.schema", cfg.Source.Schema)
	v.SetDefault("source.file_field", cfg.Source.FileField)
	v.SetDefault("source.payload_field", cfg.Source.PayloadField)
	v.SetDefault("source.prefix", cfg.Source.Prefix)
	v.SetDefault("source.workers", cfg.Source.Workers)
	v.SetDefault("source.skip_invalid", cfg.Source.SkipInvalid)
	v.SetDefault("sink.format", cfg.Sink.Format)
	v.SetDefault("sink.delimiter", cfg.Sink.Delimiter)
	v.SetDefault("sink.schema", cfg.Sink.Schema)
	v.SetDefault("sink.path", cfg.Sink.Path)
	v.SetDefault("sink.file_name_field", cfg.Sink.FileNameField)
	v.SetDefault("sink.batch_size", cfg.Sink.BatchSize)

	// Choose config file
	if path == "" {
		// Allow override via env var
		if envPath := os.Getenv("DOCBRIDGE_CONFIG"); envPath != "" {
			path = envPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search common locations with base name `docbridge`
		v.SetConfigName("docbridge")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".docbridge"))
		}
	}

	// Read config file if present; if not found, continue with defaults/env
	if err := v.ReadInConfig(); err != nil {
		var viperConfigFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &viperConfigFileNotFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch lvl {
	case "debug", "info", "warn", "warning", "error":
		// ok
	default:
		return errors.Errorf("invalid log.level: %q", c.Log.Level)
	}

	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = "./data"
	}
	if c.Source.Workers <= 0 {
		c.Source.Workers = 1
	}
	return nil
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
