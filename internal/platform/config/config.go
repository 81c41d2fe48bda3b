// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local .env file,
when present, is loaded first via 'joho/godotenv' and never overrides variables
already set in the process environment.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Travelpack API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Key-Value Cache (Redis). Empty disables the suggestion cache.
	RedisURL string `env:"REDIS_URL"`

	// JWTSecret signs session tokens. Never logged.
	JWTSecret string `env:"JWT_SECRET,required"`

	// Generative collaborator (Gemini)
	GeminiAPIKey        string        `env:"GEMINI_API_KEY,required"`
	GeminiModel         string        `env:"GEMINI_MODEL"         envDefault:"gemini-1.5-pro"`
	CollaboratorTimeout time.Duration `env:"COLLABORATOR_TIMEOUT" envDefault:"25s"`

	// SuggestionCacheTTL bounds how long cached suggestions are served.
	SuggestionCacheTTL time.Duration `env:"SUGGESTION_CACHE_TTL" envDefault:"6h"`

	// Cross-Origin Resource Sharing: origins ending in this suffix are allowed outside development.
	CORSOriginSuffix string `env:"CORS_ORIGIN_SUFFIX"`

	// TrustedProxies lists the CIDR ranges of reverse proxies whose
	// X-Real-IP and X-Forwarded-For headers are believed. Empty trusts none.
	TrustedProxies []netip.Prefix `env:"TRUSTED_PROXIES" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is [Load] with an explicit dotenv path. A missing file is not an error.
func LoadFrom(dotenvPath string) (*Config, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read %s: %w", dotenvPath, err)
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.CollaboratorTimeout <= 0 {
		return nil, fmt.Errorf("config: COLLABORATOR_TIMEOUT must be positive")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowsOrigin reports whether a browser origin may call the API.
func (c *Config) AllowsOrigin(origin string) bool {
	if c.IsDevelopment() {
		return true
	}
	return c.CORSOriginSuffix != "" && strings.HasSuffix(origin, c.CORSOriginSuffix)
}
