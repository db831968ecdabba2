package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceConfig configures one source adapter.
type SourceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// EnrichConfig configures the optional article-page enrichment pass.
type EnrichConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	RequestDelayMS int  `mapstructure:"request_delay_ms"`
}

// Config is the application configuration.
type Config struct {
	LogLevel              string                  `mapstructure:"log_level"`
	RequestTimeoutSeconds int                     `mapstructure:"request_timeout_seconds"`
	LimitPerSource        int                     `mapstructure:"limit_per_source"`
	Sources               map[string]SourceConfig `mapstructure:"sources"`
	Enrich                EnrichConfig            `mapstructure:"enrich"`
	PublishersFile        string                  `mapstructure:"publishers_file"`
}

// RequestTimeout returns the adapter HTTP timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SourceEnabled reports whether the named source should be wired up.
// Sources absent from the config default to enabled.
func (c Config) SourceEnabled(name string) bool {
	sc, ok := c.Sources[strings.ToLower(name)]
	if !ok {
		return true
	}
	return sc.Enabled
}

// SourceBaseURL returns the configured base URL override for a source, empty
// when the adapter default should be used.
func (c Config) SourceBaseURL(name string) string {
	return c.Sources[strings.ToLower(name)].BaseURL
}

// Load reads configuration from the optional config file at path (or
// ./config.yaml when path is empty) with TICKERBRIEF_-prefixed environment
// variables taking precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("limit_per_source", 5)

	v.SetEnvPrefix("TICKERBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
