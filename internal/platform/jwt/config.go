package jwtmw

import (
	"errors"
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpiration overrides the token lifetime (Go duration syntax).
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	// DefaultExpiration is the token lifetime when none is configured.
	DefaultExpiration = 24 * time.Hour
)

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("jwt: JWT_SECRET is not set")

// Config holds token signing settings.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig reads the signing settings from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		Secret:     os.Getenv(EnvKeyJWTSecret),
		Expiration: DefaultExpiration,
	}
	if cfg.Secret == "" {
		return cfg, ErrMissingSecret
	}
	if raw := os.Getenv(EnvKeyJWTExpiration); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return cfg, errors.New("jwt: invalid JWT_EXPIRATION")
		}
		cfg.Expiration = d
	}
	return cfg, nil
}
