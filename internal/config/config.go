// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. One Config serves both the portal and the content API; each
// server reads the fields it needs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Development defaults that must not reach production.
const (
	defaultDBPassword    = "changeme"
	defaultJWTSecret     = "dev-secret-change-me"
	defaultAdminPassword = "admin123"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	Env string // "development", "production", "testing"

	// Portal (public site + back-office)
	Host         string
	Port         string
	APIURL       string        // content API root, e.g. http://localhost:5000/api
	APITimeout   time.Duration // zero means no client timeout
	SessionTTL   time.Duration
	PageCacheTTL time.Duration

	// Content API
	APIHost   string
	APIPort   string
	JWTSecret string
	JWTTTL    time.Duration

	// PostgreSQL connection (content API)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (portal sessions and page cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible media storage (content API)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Seeded administrator
	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists. Variables already set in the
// environment win over the file. Returns an error if a duration is
// malformed or if development secrets are used in production.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	d := durations{}
	cfg := &Config{
		Env: envOrDefault("APP_ENV", "development"),

		Host:         envOrDefault("APP_HOST", "0.0.0.0"),
		Port:         envOrDefault("APP_PORT", "8080"),
		APIURL:       strings.TrimRight(envOrDefault("API_URL", "http://localhost:5000/api"), "/"),
		APITimeout:   d.get("API_TIMEOUT", 0),
		SessionTTL:   d.get("SESSION_TTL", 24*time.Hour),
		PageCacheTTL: d.get("PAGE_CACHE_TTL", 5*time.Minute),

		APIHost:   envOrDefault("API_HOST", "0.0.0.0"),
		APIPort:   envOrDefault("API_PORT", "5000"),
		JWTSecret: envOrDefault("JWT_SECRET", defaultJWTSecret),
		JWTTTL:    d.get("JWT_TTL", 24*time.Hour),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "mlomp"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", defaultDBPassword),
		DBName:     envOrDefault("POSTGRES_DB", "mlomp"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  envOrDefault("S3_ENDPOINT", "http://localhost:9000"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "mlomp-media"),
		S3PublicURL: strings.TrimRight(os.Getenv("S3_PUBLIC_URL"), "/"),

		AdminEmail:    envOrDefault("ADMIN_EMAIL", "admin@mlomp.sn"),
		AdminUsername: envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: envOrDefault("ADMIN_PASSWORD", defaultAdminPassword),
	}
	if d.err != nil {
		return nil, d.err
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == defaultDBPassword {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.JWTSecret == defaultJWTSecret || len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be set to at least 32 characters in production")
		}
		if cfg.AdminPassword == defaultAdminPassword {
			return nil, fmt.Errorf("ADMIN_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the portal listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// APIAddr returns the content API listen address (host:port).
func (c *Config) APIAddr() string {
	return fmt.Sprintf("%s:%s", c.APIHost, c.APIPort)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProd returns true in production; cookies are then marked Secure.
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durations parses duration variables, keeping the first error.
type durations struct {
	err error
}

func (d *durations) get(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		if d.err == nil {
			d.err = fmt.Errorf("%s: %w", key, err)
		}
		return fallback
	}
	return dur
}
