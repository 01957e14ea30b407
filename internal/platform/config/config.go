// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first through 'joho/godotenv' so developers do not need to export variables
by hand; real environment variables always win over the file.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, billing) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/sociallink/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the SocialLink API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DataSource selects the backing store: "live" (PostgreSQL + Redis) or "demo"
	// (seeded in-memory). Empty means live when DATABASE_URL is set, demo otherwise.
	DataSource string `env:"DATA_SOURCE"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL"`

	// RS256 key pair for access tokens. Both empty means an ephemeral key (development only).
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`

	// PublicBaseURL is where public profile pages are served (used for QR codes and canonical URLs).
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	// ProfileCacheTTL bounds how stale a cached username lookup may be.
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"30s"`

	// Object Storage (Cloudflare R2 / S3-compatible)
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// Stripe embedded checkout
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	StripeReturnURL string `env:"STRIPE_RETURN_URL" envDefault:"http://localhost:3000/billing/return?session_id={CHECKOUT_SESSION_ID}"`

	// Razorpay orders
	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load reads the optional dotenv file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// The dotenv file is a convenience; a missing file is not an error.
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load %s: %w", envFile, err)
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize resolves derived defaults and rejects contradictory settings.
func (c *Config) normalize() error {
	c.DataSource = strings.ToLower(strings.TrimSpace(c.DataSource))
	if c.DataSource == "" {
		c.DataSource = constants.DataSourceDemo
		if c.DatabaseURL != "" {
			c.DataSource = constants.DataSourceLive
		}
	}

	switch c.DataSource {
	case constants.DataSourceLive:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the live data source")
		}
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for the live data source")
		}
	case constants.DataSourceDemo:
	default:
		return fmt.Errorf("config: unknown DATA_SOURCE %q", c.DataSource)
	}

	if (c.JWTPrivKeyPath == "") != (c.JWTPubKeyPath == "") {
		return fmt.Errorf("config: JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH must be set together")
	}
	if c.JWTPrivKeyPath == "" && c.IsProduction() {
		return fmt.Errorf("config: JWT key paths are required in production")
	}

	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")
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

// IsDemo reports whether the in-memory demo data source is selected.
func (c *Config) IsDemo() bool {
	return c.DataSource == constants.DataSourceDemo
}

// HasObjectStorage reports whether file blobs should be offloaded to S3.
func (c *Config) HasObjectStorage() bool {
	return c.S3Bucket != ""
}

// AllowedOrigins lists the origins accepted by the CORS middleware outside development.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, 4)
	if parsed, err := url.Parse(c.PublicBaseURL); err == nil && parsed.Host != "" {
		origins = append(origins, parsed.Scheme+"://"+parsed.Host)
	}
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimRight(strings.TrimSpace(origin), "/"); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
