// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"
)

var allVars = []string{
	"APP_ENV", "APP_HOST", "APP_PORT", "API_URL", "API_TIMEOUT", "SESSION_TTL", "PAGE_CACHE_TTL",
	"API_HOST", "API_PORT", "JWT_SECRET", "JWT_TTL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	"ADMIN_EMAIL", "ADMIN_USERNAME", "ADMIN_PASSWORD",
}

// clearEnv sets every variable Load reads to "", which envOrDefault treats
// the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	checks := map[string][2]string{
		"Env":        {cfg.Env, "development"},
		"Port":       {cfg.Port, "8080"},
		"APIURL":     {cfg.APIURL, "http://localhost:5000/api"},
		"APIPort":    {cfg.APIPort, "5000"},
		"DBUser":     {cfg.DBUser, "mlomp"},
		"DBName":     {cfg.DBName, "mlomp"},
		"ValkeyPort": {cfg.ValkeyPort, "6379"},
		"S3Bucket":   {cfg.S3Bucket, "mlomp-media"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
	if cfg.APITimeout != 0 {
		t.Errorf("APITimeout = %v, want 0 (no timeout)", cfg.APITimeout)
	}
	if cfg.SessionTTL != 24*time.Hour || cfg.JWTTTL != 24*time.Hour {
		t.Errorf("TTLs = %v / %v, want 24h", cfg.SessionTTL, cfg.JWTTTL)
	}
}

// TestLoad_EnvOverrides verifies that environment variables take precedence.
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "3000")
	t.Setenv("API_URL", "https://api.mlomp.sn/api/")
	t.Setenv("API_TIMEOUT", "15s")
	t.Setenv("PAGE_CACHE_TTL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.APIURL != "https://api.mlomp.sn/api" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.APITimeout != 15*time.Second || cfg.PageCacheTTL != time.Minute {
		t.Errorf("durations = %v, %v", cfg.APITimeout, cfg.PageCacheTTL)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_TTL", "one day")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "JWT_TTL") {
		t.Fatalf("Load() error = %v, want JWT_TTL parse error", err)
	}
}

// TestLoad_ProductionRejectsDefaults verifies that development secrets are
// refused in production.
func TestLoad_ProductionRejectsDefaults(t *testing.T) {
	strong := strings.Repeat("k", 40)
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "default db password",
			env:     map[string]string{"JWT_SECRET": strong, "ADMIN_PASSWORD": "x"},
			wantErr: "POSTGRES_PASSWORD",
		},
		{
			name:    "short jwt secret",
			env:     map[string]string{"POSTGRES_PASSWORD": "p", "JWT_SECRET": "short", "ADMIN_PASSWORD": "x"},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "default admin password",
			env:     map[string]string{"POSTGRES_PASSWORD": "p", "JWT_SECRET": strong},
			wantErr: "ADMIN_PASSWORD",
		},
		{
			name: "all set",
			env:  map[string]string{"POSTGRES_PASSWORD": "p", "JWT_SECRET": strong, "ADMIN_PASSWORD": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("APP_ENV", "production")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Load: %v", err)
				}
				if !cfg.IsProd() || cfg.IsDev() {
					t.Error("expected production mode")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestAddresses(t *testing.T) {
	cfg := &Config{
		Host: "127.0.0.1", Port: "8080",
		APIHost: "0.0.0.0", APIPort: "5000",
		ValkeyHost: "cache", ValkeyPort: "6379",
		DBUser: "u", DBPassword: "p@ss", DBHost: "db", DBPort: "5432", DBName: "mlomp",
	}
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
	if got := cfg.APIAddr(); got != "0.0.0.0:5000" {
		t.Errorf("APIAddr() = %q", got)
	}
	if got := cfg.ValkeyAddr(); got != "cache:6379" {
		t.Errorf("ValkeyAddr() = %q", got)
	}
	if got := cfg.DSN(); got != "postgres://u:p@ss@db:5432/mlomp?sslmode=disable" {
		t.Errorf("DSN() = %q", got)
	}
}

// TestEnvOrDefault verifies the env-var-or-fallback helper.
func TestEnvOrDefault(t *testing.T) {
	t.Setenv("APP_PORT", "3000")
	if got := envOrDefault("APP_PORT", "8080"); got != "3000" {
		t.Errorf("envOrDefault = %q, want 3000", got)
	}
	t.Setenv("APP_PORT", "")
	if got := envOrDefault("APP_PORT", "8080"); got != "8080" {
		t.Errorf("envOrDefault = %q, want fallback 8080", got)
	}
}
