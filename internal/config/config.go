package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port         string
	RedisURL     string
	JWTSecret    string
	TickInterval time.Duration
	MapRadius    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:         envOrDefault("PORT", "8009"),
		RedisURL:     envOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:    envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		TickInterval: envDurationOrDefault("TICK_INTERVAL", time.Second),
		MapRadius:    envIntOrDefault("MAP_RADIUS", 10),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
