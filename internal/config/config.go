package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // SUMMARY_TIMEZONE must resolve in minimal containers

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Storage
	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// LocalDevUser authenticates every request as this user when set.
	// Rejected in production.
	LocalDevUser string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	Summary   SummaryConfig
	RateLimit RateLimitConfig
}

// SummaryConfig holds settings for summary computation
type SummaryConfig struct {
	Location     *time.Location
	MaxRangeDays int
	QueryTimeout time.Duration
}

// RateLimitConfig holds per-user rate limiting settings
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/finboard.db"),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		LocalDevUser:  getEnv("AUTH_LOCAL_DEV_USER", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
	}

	var err error
	if cfg.Summary.Location, err = time.LoadLocation(getEnv("SUMMARY_TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("SUMMARY_TIMEZONE: %w", err)
	}
	if cfg.Summary.MaxRangeDays, err = getEnvInt("SUMMARY_MAX_RANGE_DAYS", 3660); err != nil {
		return nil, err
	}
	if cfg.Summary.QueryTimeout, err = getEnvDuration("SUMMARY_QUERY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimit.PerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = getEnvInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadStorage reads only the storage settings, for tools that never serve
// HTTP such as migrate and seed
func LoadStorage() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/finboard.db"),
		Env:           getEnv("ENV", "development"),
	}
	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}

	if c.LocalDevUser != "" {
		if c.IsProduction() {
			return fmt.Errorf("AUTH_LOCAL_DEV_USER must not be set in production")
		}
	} else {
		if c.Auth0Domain == "" {
			return fmt.Errorf("AUTH0_DOMAIN is required")
		}
		if c.Auth0Audience == "" {
			return fmt.Errorf("AUTH0_AUDIENCE is required")
		}
	}

	if c.Summary.MaxRangeDays < 0 {
		return fmt.Errorf("SUMMARY_MAX_RANGE_DAYS must not be negative")
	}
	if c.Summary.QueryTimeout <= 0 {
		return fmt.Errorf("SUMMARY_QUERY_TIMEOUT must be positive")
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.StorageDriver {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageSQLite, c.StorageDriver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
