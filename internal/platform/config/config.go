// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Shinkan API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// AdminTokenSecret signs the HS256 bearer tokens that guard the
	// ingestion trigger endpoint.
	AdminTokenSecret string `env:"ADMIN_TOKEN_SECRET,required"`

	// # Cache TTLs (per query class)
	//
	// Current-month data is the most volatile (same-day ingestion runs touch
	// it), so it carries the shortest TTL. Metadata enumerations barely
	// change and carry the longest.

	CacheCurrentTTL  time.Duration `env:"CACHE_CURRENT_TTL"  envDefault:"1h"`
	CacheUpcomingTTL time.Duration `env:"CACHE_UPCOMING_TTL" envDefault:"6h"`
	CacheSearchTTL   time.Duration `env:"CACHE_SEARCH_TTL"   envDefault:"30m"`
	CacheMetadataTTL time.Duration `env:"CACHE_METADATA_TTL" envDefault:"24h"`

	// CacheInvalidateOnSync controls whether an ingestion run actively
	// deletes release cache entries, or lets them age out by TTL alone.
	CacheInvalidateOnSync bool `env:"CACHE_INVALIDATE_ON_SYNC" envDefault:"true"`

	// SyncMonthsAhead is how many months past the current one an ingestion
	// run fetches from external sources.
	SyncMonthsAhead int `env:"SYNC_MONTHS_AHEAD" envDefault:"3"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
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
