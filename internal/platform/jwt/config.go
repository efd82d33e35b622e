package jwtmw

import (
	"log/slog"
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the HMAC signing key.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpiration is the environment variable holding the access token lifetime.
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	defaultExpiration = 30 * time.Minute
	devSecret         = "dev-only-insecure-secret"
)

// Config holds token issuing settings.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig reads JWT_SECRET and JWT_EXPIRATION.
// An empty secret falls back to a development key and logs a warning.
func LoadConfig() Config {
	cfg := Config{
		Secret:     os.Getenv(EnvKeyJWTSecret),
		Expiration: defaultExpiration,
	}
	if cfg.Secret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
		cfg.Secret = devSecret
	}
	if v := os.Getenv(EnvKeyJWTExpiration); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Expiration = d
		}
	}
	return cfg
}
