// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto a typed [Config].

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The remote store backend is selected with STORE_BACKEND. Each backend only
requires its own connection settings, which [Config.Validate] checks after
parsing.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Store Backends

const (
	// BackendPostgres talks to PostgreSQL directly through pgxpool.
	BackendPostgres = "postgres"

	// BackendPostgREST talks to a PostgREST/Supabase REST endpoint.
	BackendPostgREST = "postgrest"

	// BackendMemory keeps everything in process. Development and tests only.
	BackendMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the movie catalog backend.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DefaultLocale is used for notifications when the browser sends no preference.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"ru"`

	// Remote store selection
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// PostgREST / Supabase endpoint
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`

	// SeedDemo loads a demo user and a few movies into the memory backend.
	SeedDemo bool `env:"SEED_DEMO" envDefault:"true"`

	// Key-Value store for durable browser sessions. Empty keeps sessions in memory.
	RedisURL string `env:"REDIS_URL"`

	// SessionSecret signs the browser session cookie.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// External metadata provider (Kinopoisk unofficial API)
	KinopoiskURL    string `env:"KINOPOISK_API_URL" envDefault:"https://kinopoiskapiunofficial.tech/api/v2.1/films/search-by-keyword"`
	KinopoiskAPIKey string `env:"KINOPOISK_API_KEY"`

	// External subtitle provider (OpenSubtitles REST API)
	OpenSubtitlesURL       string `env:"OPENSUBTITLES_API_URL"    envDefault:"https://api.opensubtitles.com/api/v1"`
	OpenSubtitlesAPIKey    string `env:"OPENSUBTITLES_API_KEY"`
	OpenSubtitlesUserAgent string `env:"OPENSUBTITLES_USER_AGENT" envDefault:"movies-catalog v1.0"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	cfg := &Config{}

	// Fails if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the selected store backend has its connection settings.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %q backend", c.StoreBackend)
		}
	case BackendPostgREST:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("config: SUPABASE_URL and SUPABASE_KEY are required for the %q backend", c.StoreBackend)
		}
	case BackendMemory:
		if c.IsProduction() {
			return fmt.Errorf("config: the %q backend is not allowed in production", c.StoreBackend)
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowsOrigin reports whether origin is listed in EXTRA_ORIGINS.
func (c *Config) AllowsOrigin(origin string) bool {
	for _, allowed := range strings.Split(c.ExtraOrigins, ",") {
		if allowed = strings.TrimSpace(allowed); allowed != "" && allowed == origin {
			return true
		}
	}
	return false
}
