package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadFrom(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{"JWT_SECRET": "s3cret"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverPostgres || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWT.TTL != time.Hour || cfg.JWT.ClockSkew != time.Minute {
		t.Fatalf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if cfg.JWT.Issuer != "accounts-api" || cfg.JWT.Audience != "accounts-web" {
		t.Fatalf("unexpected jwt issuer/audience: %+v", cfg.JWT)
	}
	if cfg.Login.RateLimit != 10 || cfg.Login.RateWindow != time.Minute {
		t.Fatalf("unexpected login defaults: %+v", cfg.Login)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis must be disabled by default, got %q", cfg.Redis.Addr)
	}
	if !cfg.Postgres.AutoMigrate || cfg.BcryptCost != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:4200" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("default env must be development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET":           "s3cret",
		"STORE_DRIVER":         "mongo",
		"JWT_TTL":              "15m",
		"REDIS_ADDR":           "cache:6379",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"ENV":                  "production",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != DriverMongo || cfg.JWT.TTL != 15*time.Minute || cfg.Redis.Addr != "cache:6379" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.IsDevelopment() {
		t.Fatal("production must not be development")
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"zero ttl", map[string]string{"JWT_SECRET": "s", "JWT_TTL": "0s"}, "JWT_TTL"},
		{"negative limit", map[string]string{"JWT_SECRET": "s", "LOGIN_RATE_LIMIT": "-1"}, "LOGIN_RATE_LIMIT"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.env)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}
