package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/tasks")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_URL", "https://tasks.example.com")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("REFRESH_TOKEN_TTL", "48h")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("MAIL_FROM", "noreply@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL want 30m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 48*time.Hour {
		t.Fatalf("RefreshTokenTTL want 48h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.Port != 3000 {
		t.Fatalf("Port want default 3000, got %d", cfg.Port)
	}
	if cfg.VerificationLinkTTL != 10*time.Minute {
		t.Fatalf("VerificationLinkTTL want default 10m, got %v", cfg.VerificationLinkTTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("APP_URL", "https://tasks.example.com")
	// JWT_SECRET deliberately unset

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}
