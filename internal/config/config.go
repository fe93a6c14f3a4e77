package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort         = "3000"
	defaultDatabaseURL  = "experiencehub.db"
	defaultAuthSecret   = "change-me-auth-secret"
	defaultAccessTTL    = "15m"
	defaultRefreshTTL   = "168h"
	defaultCookieSecure = "true"
)

// Config is the runtime configuration, read from the environment once at
// startup and injected everywhere else. The 15m/168h token lifetimes are
// contract constants existing clients rely on; the env overrides exist for
// tests and local development only.
type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	AuthSecret      string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
}

func Load() (*Config, error) {
	appEnv := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if appEnv == "" {
		appEnv = "dev"
	}

	cfg := &Config{
		AppEnv:       appEnv,
		Port:         getEnv("PORT", defaultPort),
		DatabaseURL:  getEnv("DATABASE_URL", defaultDatabaseURL),
		AuthSecret:   strings.TrimSpace(getEnv("AUTH_SECRET", defaultAuthSecret)),
		CookieSecure: parseBoolEnv("COOKIE_SECURE", defaultCookieSecure),
	}

	var err error
	cfg.AccessTokenTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTokenTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTokenTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.AuthSecret == "" || cfg.AuthSecret == defaultAuthSecret {
			return fmt.Errorf("in prod/release AUTH_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
