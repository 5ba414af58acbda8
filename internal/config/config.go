package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret is returned when no token signing secret is configured.
var ErrMissingSecret = errors.New("ACCESS_TOKEN_SECRET must be set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	DatabasePath   string
	AccessSecret   string
	AccessTokenTTL time.Duration
	AdminKey       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	LogLevel       string
	LogFormat      string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := getEnvDuration("ACCESS_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "3000"),
		DatabasePath:   getEnv("DATABASE_PATH", "Bank.db"),
		AccessSecret:   os.Getenv("ACCESS_TOKEN_SECRET"),
		AccessTokenTTL: ttl,
		AdminKey:       os.Getenv("ADMIN_KEY"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
	if cfg.AccessSecret == "" {
		return nil, ErrMissingSecret
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
