// Package config loads archquery's deployment-level configuration: the
// knobs a host wraps around the pure compiler rather than anything the
// compiler itself reads mid-parse.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every deployment-tunable knob. Non-pointer defaults are
// always populated; Load never returns a Config with a zero-value field
// the caller didn't explicitly set to zero.
type Config struct {
	Compiler CompilerConfig `mapstructure:"compiler"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Store    StoreConfig    `mapstructure:"store"`
	Server   ServerConfig   `mapstructure:"server"`
}

// CompilerConfig overrides the façade's defaults. The DSL's own default
// sort (submitted_date/descending) and 4 KiB input ceiling are spec-fixed;
// these let a deployment raise the ceiling or change the fallback sort
// without touching the compiler itself.
type CompilerConfig struct {
	MaxInputBytes      int    `mapstructure:"max_input_bytes"`
	DefaultSortCode    string `mapstructure:"default_sort_code"`
	DebugModeByDefault bool   `mapstructure:"debug_mode_by_default"`
}

// CacheConfig points the memoizing cache layer at a Redis instance.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	TTLSecs int    `mapstructure:"ttl_seconds"`
}

// StoreConfig selects and connects the stored-query backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "sqlite"
	DSN    string `mapstructure:"dsn"`
}

// ServerConfig configures the debug HTTP surface.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// Load loads archquery.yml (or archquery.yaml) from the current directory,
// falling back to defaults for anything unset, with ARCHQUERY_*
// environment variables taking precedence over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("compiler.max_input_bytes", 4096)
	v.SetDefault("compiler.default_sort_code", "sd")
	v.SetDefault("compiler.debug_mode_by_default", false)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "archquery.db")
	v.SetDefault("server.port", 8080)

	v.SetConfigName("archquery")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ARCHQUERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
