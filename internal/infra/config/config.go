package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string

	// JWTSecret signs both session tokens and verification-link HMACs.
	JWTSecret string

	AppURL string
	Port   int

	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	VerificationLinkTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	AllowedOrigins   []string
	AllowCredentials bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	keys := []string{
		"DATABASE_URL", "JWT_SECRET", "APP_URL", "PORT",
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "VERIFICATION_LINK_TTL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "MAIL_FROM",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	v.SetDefault("PORT", 3000)
	v.SetDefault("ACCESS_TOKEN_TTL", "1h")
	v.SetDefault("REFRESH_TOKEN_TTL", "24h")
	v.SetDefault("VERIFICATION_LINK_TTL", "10m")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("ALLOW_CREDENTIALS", false)

	for _, k := range []string{"DATABASE_URL", "JWT_SECRET", "APP_URL"} {
		if v.GetString(k) == "" {
			return nil, fmt.Errorf("required configuration %s is not set", k)
		}
	}

	cfg := &Config{
		DatabaseURL:         v.GetString("DATABASE_URL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		AppURL:              v.GetString("APP_URL"),
		Port:                v.GetInt("PORT"),
		AccessTokenTTL:      v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:     v.GetDuration("REFRESH_TOKEN_TTL"),
		VerificationLinkTTL: v.GetDuration("VERIFICATION_LINK_TTL"),
		SMTPHost:            v.GetString("SMTP_HOST"),
		SMTPPort:            v.GetInt("SMTP_PORT"),
		SMTPUsername:        v.GetString("SMTP_USERNAME"),
		SMTPPassword:        v.GetString("SMTP_PASSWORD"),
		MailFrom:            v.GetString("MAIL_FROM"),
		AllowedOrigins:      v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:    v.GetBool("ALLOW_CREDENTIALS"),
	}

	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 || cfg.VerificationLinkTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive durations")
	}

	return cfg, nil
}
