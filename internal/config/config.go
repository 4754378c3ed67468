// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

// Package config loads service configuration from defaults, an optional YAML
// file, DWT_-prefixed environment variables, and command-line flags, in that
// order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the service's environment variables, e.g.
// DWT_DATABASE_URL maps to database.url.
const envPrefix = "DWT_"

// Config is the full service configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Observability ObservabilityConfig `koanf:"observability"`
	Database      DatabaseConfig      `koanf:"database"`
	Redis         RedisConfig         `koanf:"redis"`
	Session       SessionConfig       `koanf:"session"`
	Email         EmailConfig         `koanf:"email"`
	Frontend      FrontendConfig      `koanf:"frontend"`
	Log           LogConfig           `koanf:"log"`
}

// ServerConfig configures the API listener.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// ObservabilityConfig configures the metrics and health listener.
type ObservabilityConfig struct {
	Addr string `koanf:"addr"`
}

// DatabaseConfig configures PostgreSQL connectivity.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// RedisConfig configures the session store.
type RedisConfig struct {
	URL string `koanf:"url"`
}

// SessionConfig configures session lifetime and the session cookie.
type SessionConfig struct {
	TTL    time.Duration `koanf:"ttl"`
	Cookie CookieConfig  `koanf:"cookie"`
}

// CookieConfig configures the dwt_session cookie.
type CookieConfig struct {
	Domain string `koanf:"domain"`
	Secure bool   `koanf:"secure"`
}

// EmailConfig configures the Brevo transactional email transport.
type EmailConfig struct {
	APIKey        string `koanf:"apikey"`
	SenderName    string `koanf:"sendername"`
	SenderAddress string `koanf:"senderaddress"`
}

// FrontendConfig points generated links at the web client.
type FrontendConfig struct {
	URL string `koanf:"url"`
}

// LogConfig configures structured logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":        ":8080",
		"observability.addr": ":9090",
		"session.ttl":        "720h",
		"session.cookie.secure": true,
		"frontend.url":       "http://localhost:3000",
		"log.level":          "info",
		"log.format":         "json",
	}
}

// Load builds a Config. path names an optional YAML file; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, oops.Code("CONFIG_DEFAULTS_FAILED").Wrap(err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the service cannot run without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	if c.Redis.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("redis.url is required")
	}
	if c.Session.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("session.ttl must be positive")
	}
	return nil
}
