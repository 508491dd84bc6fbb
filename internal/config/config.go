package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config carries all environment-driven settings for the API process.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	Port        string
	Env         string
	CorsOrigin  string

	RateLimitAuthMax  int
	RateLimitWriteMax int
}

// Load reads configuration from the environment. DATABASE_URL and JWT_SECRET
// are required; everything else has a default.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("RATE_LIMIT_AUTH_MAX", 10)
	v.SetDefault("RATE_LIMIT_WRITE_MAX", 60)

	cfg := &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          time.Duration(v.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		Port:              v.GetString("PORT"),
		Env:               v.GetString("ENV"),
		CorsOrigin:        v.GetString("CORS_ORIGIN"),
		RateLimitAuthMax:  v.GetInt("RATE_LIMIT_AUTH_MAX"),
		RateLimitWriteMax: v.GetInt("RATE_LIMIT_WRITE_MAX"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return cfg, nil
}
