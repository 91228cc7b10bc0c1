package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Database. A postgres:// URL selects PostgreSQL; a plain path or
	// sqlite: URL selects the embedded SQLite database.
	DatabaseURL string

	// Redis, optional. Empty disables availability caching.
	RedisURL        string
	AvailabilityTTL time.Duration

	// Search tuning
	SearchWorkers         int
	AvailabilityTimeout   time.Duration
	DefaultSearchDays     int
	DefaultMaxSuggestions int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabasePath()),
		RedisURL:    getEnv("REDIS_URL", ""),

		AvailabilityTTL:       getDurationEnv("AVAILABILITY_CACHE_TTL", 60*time.Second),
		SearchWorkers:         getIntEnv("SEARCH_WORKERS", 8),
		AvailabilityTimeout:   getDurationEnv("AVAILABILITY_TIMEOUT", 3*time.Second),
		DefaultSearchDays:     getIntEnv("DEFAULT_SEARCH_DAYS", 7),
		DefaultMaxSuggestions: getIntEnv("DEFAULT_MAX_SUGGESTIONS", 10),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slotwise/slotwise.db"
	}
	return home + "/.slotwise/slotwise.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
