// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables, optionally seeded from a .env file. It provides a centralized
// Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
	SourceDB   = "db"
)

// Contact submitters.
const (
	SubmitterDB        = "db"
	SubmitterAMQP      = "amqp"
	SubmitterSimulated = "simulated"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPassword string
	ValkeyPort     string

	// Catalog asset
	CatalogSource string // "file", "http", "s3", "db"
	CatalogPath   string
	CatalogURL    string
	CatalogKey    string // object key when CatalogSource is "s3"
	CatalogWatch  bool
	BandsFile     string
	PageSize      int

	// S3-compatible object storage
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// RabbitMQ
	AMQPURL string

	ContactSubmitter string // "db", "amqp", "simulated"
	RateLimitPerMin  int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Variables from a .env file in the
// working directory fill in anything the environment does not set.
// Returns an error if values are malformed or critical values are
// missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "cinesou"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "cinesou"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		CatalogSource: strings.ToLower(envOrDefault("CATALOG_SOURCE", SourceFile)),
		CatalogPath:   envOrDefault("CATALOG_PATH", "movies.xml"),
		CatalogURL:    os.Getenv("CATALOG_URL"),
		CatalogKey:    envOrDefault("CATALOG_KEY", "catalog/movies.xml"),
		BandsFile:     os.Getenv("BANDS_FILE"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "cinesou"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		AMQPURL: os.Getenv("AMQP_URL"),

		ContactSubmitter: strings.ToLower(envOrDefault("CONTACT_SUBMITTER", SubmitterSimulated)),
	}

	var err error
	if cfg.CatalogWatch, err = envBool("CATALOG_WATCH", false); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = envInt("PAGE_SIZE", 12); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMin, err = envInt("RATE_LIMIT_PER_MIN", 120); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case SourceFile, SourceDB, SourceS3:
	case SourceHTTP:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_URL must be set when CATALOG_SOURCE is http")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE %q is not one of file, http, s3, db", c.CatalogSource)
	}

	switch c.ContactSubmitter {
	case SubmitterDB, SubmitterSimulated:
	case SubmitterAMQP:
		if c.AMQPURL == "" {
			return fmt.Errorf("AMQP_URL must be set when CONTACT_SUBMITTER is amqp")
		}
	default:
		return fmt.Errorf("CONTACT_SUBMITTER %q is not one of db, amqp, simulated", c.ContactSubmitter)
	}

	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}

	if c.Env == "production" {
		if c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// NeedsDB reports whether any configured component talks to PostgreSQL.
func (c *Config) NeedsDB() bool {
	return c.CatalogSource == SourceDB || c.ContactSubmitter == SubmitterDB
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
