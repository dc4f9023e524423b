// Package config loads and validates the application configuration from an
// optional YAML file and USERDECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Formatter and strategy names recognized by the registries. Kept here so
// configuration can be validated once at load time instead of per call.
var (
	Formatters = []string{"compact", "verbose", "structured", "tabular", "export"}
	Strategies = []string{"criteria", "exact", "substring"}
)

var (
	ErrUnknownFormatter = errors.New("unknown formatter")
	ErrUnknownStrategy  = errors.New("unknown filter strategy")
)

// AppConfig holds every tunable of the library. A zero-setup caller should
// use Default; Load layers a YAML file and environment overrides on top of
// the same defaults.
type AppConfig struct {
	DefaultFormatter string `mapstructure:"default_formatter"`
	DefaultStrategy  string `mapstructure:"default_strategy"`
	CaseSensitive    bool   `mapstructure:"case_sensitive"`
	EnableCache      bool   `mapstructure:"enable_cache"`
	MaxCacheEntries  int    `mapstructure:"max_cache_entries"`
	StrictValidation bool   `mapstructure:"strict_validation"`
	AutoFixMalformed bool   `mapstructure:"auto_fix_malformed"`
	EnableMetrics    bool   `mapstructure:"enable_metrics"`
	LogMarker        string `mapstructure:"log_marker"`
	LogLevel         string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_formatter", "compact")
	v.SetDefault("default_strategy", "criteria")
	v.SetDefault("case_sensitive", false)
	v.SetDefault("enable_cache", true)
	v.SetDefault("max_cache_entries", 100)
	v.SetDefault("strict_validation", false)
	v.SetDefault("auto_fix_malformed", true)
	v.SetDefault("enable_metrics", true)
	v.SetDefault("log_marker", "USERDECK")
	v.SetDefault("log_level", "info")
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	v := viper.New()
	setDefaults(v)
	cfg := &AppConfig{}
	// Unmarshal of pure defaults cannot fail.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads configuration from the given YAML file (may be empty to skip
// the file layer) and from USERDECK_* environment variables, then validates
// the result.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("userdeck")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every name-valued option resolves to a known
// implementation and that numeric options are sane.
func (c *AppConfig) Validate() error {
	if !contains(Formatters, c.DefaultFormatter) {
		return fmt.Errorf("%w: %q", ErrUnknownFormatter, c.DefaultFormatter)
	}
	if !contains(Strategies, c.DefaultStrategy) {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.DefaultStrategy)
	}
	if c.MaxCacheEntries <= 0 {
		return fmt.Errorf("max_cache_entries must be positive, got %d", c.MaxCacheEntries)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
