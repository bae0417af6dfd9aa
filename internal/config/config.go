// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to every variable name, e.g. WEEKLYCOMMITS_LISTEN_ADDR.
const envPrefix = "WEEKLYCOMMITS"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// EncryptionKey is the hex AES key used to decrypt submitted tokens.
	EncryptionKey string `envconfig:"ENCRYPTION_KEY" required:"true"`
	// EncryptionIV is the hex CBC initialization vector.
	EncryptionIV string `envconfig:"ENCRYPTION_IV" required:"true"`

	ListenAddr string `envconfig:"LISTEN_ADDR" default:"127.0.0.1:8080"`

	// GitHubAPIURL overrides the REST base URL (GitHub Enterprise). Empty means api.github.com.
	GitHubAPIURL string `envconfig:"GITHUB_API_URL"`

	// FetchConcurrency caps concurrent per-repository fetches. 0 means unbounded.
	FetchConcurrency int `envconfig:"FETCH_CONCURRENCY" default:"0"`

	// RequestRate is the process-wide inbound request rate per second. 0 disables limiting.
	RequestRate float64 `envconfig:"REQUEST_RATE" default:"0"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables and returns a validated Config.
// WEEKLYCOMMITS_ENCRYPTION_KEY and WEEKLYCOMMITS_ENCRYPTION_IV are required; the
// process cannot decrypt any request without them.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.EncryptionKey == "" {
		return fmt.Errorf("%s_ENCRYPTION_KEY must not be empty", envPrefix)
	}
	if c.EncryptionIV == "" {
		return fmt.Errorf("%s_ENCRYPTION_IV must not be empty", envPrefix)
	}
	if c.FetchConcurrency < 0 {
		return fmt.Errorf("%s_FETCH_CONCURRENCY must be >= 0, got %d", envPrefix, c.FetchConcurrency)
	}
	if c.RequestRate < 0 {
		return fmt.Errorf("%s_REQUEST_RATE must be >= 0, got %g", envPrefix, c.RequestRate)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%s_REQUEST_TIMEOUT must be >= 0, got %s", envPrefix, c.RequestTimeout)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s_LOG_LEVEL has invalid value %q", envPrefix, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%s_LOG_FORMAT has invalid value %q", envPrefix, c.LogFormat)
	}

	return nil
}
