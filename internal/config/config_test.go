package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-that-is-at-least-32-characters-long")
	defer os.Unsetenv("JWT_SECRET")

	ctx := context.Background()
	cfg, err := Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	// Test default values
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected Server.Port to be '8080', got '%s'", cfg.Server.Port)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected Server.Host to be '0.0.0.0', got '%s'", cfg.Server.Host)
	}

	if cfg.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected Server.BaseURL to be 'http://localhost:8080', got '%s'", cfg.Server.BaseURL)
	}

	if cfg.Postgres.Host != "localhost" {
		t.Errorf("Expected Postgres.Host to be 'localhost', got '%s'", cfg.Postgres.Host)
	}

	if cfg.Redis.Host != "localhost" {
		t.Errorf("Expected Redis.Host to be 'localhost', got '%s'", cfg.Redis.Host)
	}

	if cfg.JWT.AccessTokenExpiry.Duration != 30*time.Minute {
		t.Errorf("Expected JWT.AccessTokenExpiry to be 30m, got %v", cfg.JWT.AccessTokenExpiry.Duration)
	}

	if cfg.Security.BCryptCost != 12 {
		t.Errorf("Expected Security.BCryptCost to be 12, got %d", cfg.Security.BCryptCost)
	}

	if cfg.OAuth.StateTTL.Duration != 10*time.Minute {
		t.Errorf("Expected OAuth.StateTTL to be 10m, got %v", cfg.OAuth.StateTTL.Duration)
	}

	if cfg.Frontend.URL != "http://localhost:3000" {
		t.Errorf("Expected Frontend.URL to be 'http://localhost:3000', got '%s'", cfg.Frontend.URL)
	}

	if cfg.OpenAI.Model != "gpt-4" {
		t.Errorf("Expected OpenAI.Model to be 'gpt-4', got '%s'", cfg.OpenAI.Model)
	}

	if cfg.Video.OutputDir != "generated_videos" {
		t.Errorf("Expected Video.OutputDir to be 'generated_videos', got '%s'", cfg.Video.OutputDir)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be 'development', got '%s'", cfg.Env)
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("Expected CORS.AllowedOrigins to have at least one value")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(context.Background()); err == nil {
		t.Error("Expected error when JWT_SECRET is not set")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "too-short")
	defer os.Unsetenv("JWT_SECRET")

	if _, err := Load(context.Background()); err == nil {
		t.Error("Expected error when JWT_SECRET is shorter than 32 characters")
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db",
		Port:     "5433",
		User:     "u",
		Password: "p",
		DBName:   "d",
		SSLMode:  "disable",
	}

	want := "host=db port=5433 user=u password=p dbname=d sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	wantURL := "postgres://u:p@db:5433/d?sslmode=disable"
	if got := p.URL(); got != wantURL {
		t.Errorf("URL() = %q, want %q", got, wantURL)
	}
}

func TestDuration_EnvDecode(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"15s", 15 * time.Second},
		{"30m", 30 * time.Minute},
		{"2d", 48 * time.Hour},
	}

	for _, tt := range tests {
		var d Duration
		if err := d.EnvDecode(context.Background(), tt.value); err != nil {
			t.Fatalf("EnvDecode(%q) failed: %v", tt.value, err)
		}
		if d.Duration != tt.want {
			t.Errorf("EnvDecode(%q) = %v, want %v", tt.value, d.Duration, tt.want)
		}
	}

	var d Duration
	if err := d.EnvDecode(context.Background(), "bogus"); err == nil {
		t.Error("Expected error for invalid duration")
	}
}
