package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`

	// TokenSecret signs scientific calculator session tokens
	TokenSecret string        `toml:"token_secret"`
	TokenTTL    time.Duration `toml:"token_ttl"`

	// Static data overrides; empty means the built-in tables
	RatesFile string `toml:"rates_file"`
	UnitsFile string `toml:"units_file"`

	// RedisAddr enables the Redis cache; empty keeps it in memory
	RedisAddr string        `toml:"redis_addr"`
	CacheTTL  time.Duration `toml:"cache_ttl"`

	RateLimit       int           `toml:"rate_limit"`
	RateLimitWindow time.Duration `toml:"rate_limit_window"`
	CleanupSchedule string        `toml:"cleanup_schedule"`
}

// NewConfig loads configuration from an optional TOML file named by
// CALC_CONFIG, then from environment variables, which take precedence
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            "8080",
		LogLevel:        "INFO",
		TokenSecret:     "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6",
		TokenTTL:        24 * time.Hour,
		CacheTTL:        time.Hour,
		RateLimit:       120,
		RateLimitWindow: time.Minute,
		CleanupSchedule: "@every 30m",
	}

	if path := os.Getenv("CALC_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var err error
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.TokenSecret = getEnv("TOKEN_SECRET", cfg.TokenSecret)
	cfg.RatesFile = getEnv("RATES_FILE", cfg.RatesFile)
	cfg.UnitsFile = getEnv("UNITS_FILE", cfg.UnitsFile)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.CleanupSchedule = getEnv("CLEANUP_SCHEDULE", cfg.CleanupSchedule)
	if cfg.TokenTTL, err = getEnvDuration("TOKEN_TTL", cfg.TokenTTL); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", cfg.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", cfg.RateLimitWindow); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getEnvInt("RATE_LIMIT", cfg.RateLimit); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	if cfg.RateLimit <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT and RATE_LIMIT_WINDOW must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
