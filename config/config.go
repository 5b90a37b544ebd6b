package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CurrencyConfig struct {
	Symbol string `mapstructure:"symbol"`
	Code   string `mapstructure:"code"`
}

// LimitsConfig holds the client-side transfer limits in whole currency units.
type LimitsConfig struct {
	SingleTransfer int64 `mapstructure:"single_transfer"`
	DailyTransfer  int64 `mapstructure:"daily_transfer"`
	MinTransfer    int64 `mapstructure:"min_transfer"`
}

type SessionConfig struct {
	Dir        string `mapstructure:"dir"`        // storage directory; empty = per-user config dir
	Passphrase string `mapstructure:"passphrase"` // optional; a generated keyfile is used when empty
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SFA_ (SFA Bank).
// Nested keys use underscore: SFA_API_BASE_URL, SFA_SESSION_DIR, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("currency.symbol", "₦")
	v.SetDefault("currency.code", "NGN")
	v.SetDefault("limits.single_transfer", 500000)
	v.SetDefault("limits.daily_transfer", 1000000)
	v.SetDefault("limits.min_transfer", 1000)
	v.SetDefault("session.dir", "")
	v.SetDefault("session.passphrase", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SFA_API_BASE_URL -> api.base_url
	v.SetEnvPrefix("SFA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
