// Package config provides Viper-based configuration for veritext.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete veritext configuration.
type Config struct {
	Rewrite RewriteConfig `mapstructure:"rewrite"`
	History HistoryConfig `mapstructure:"history"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// RewriteConfig holds the optional external rewrite service settings.
// An empty endpoint disables the service entirely.
type RewriteConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// HistoryConfig controls run recording.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// CacheConfig controls the detection read-through cache.
type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".veritext")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/veritext")
	}

	v.SetEnvPrefix("VERITEXT")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Missing config file is fine, defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rewrite.model", "gpt-4o-mini")
	v.SetDefault("rewrite.timeout", 30*time.Second)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "veritext.db")

	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("output.colors", true)
}

func validate(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", cfg.Logging.Level)
	}
	if cfg.Cache.Size < 0 {
		return fmt.Errorf("cache size must be non-negative")
	}
	if cfg.Rewrite.Timeout <= 0 {
		return fmt.Errorf("rewrite timeout must be positive")
	}
	return nil
}
