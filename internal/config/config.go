package config

import (
	"os"
	"strings"
	"time"
)

// Config captures the tunable parameters of the API process. Values come
// from environment variables with defaults that let the binary run locally
// without excessive setup.
type Config struct {
	HTTPAddr string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisURL   string
	JWTSecret  string
	SessionTTL time.Duration

	CORSOrigins []string
	LogLevel    string
}

func Load() Config {
	cfg := Config{
		HTTPAddr:    ":8080",
		DBHost:      "localhost",
		DBUser:      "postgres",
		DBName:      "ecoride",
		DBPort:      "5432",
		RedisURL:    "redis://localhost:6379",
		JWTSecret:   "ecoride-secret-key-change-in-production",
		SessionTTL:  24 * time.Hour,
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
	}

	setFromEnv(&cfg.DBHost, "DB_HOST")
	setFromEnv(&cfg.DBUser, "DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	setFromEnv(&cfg.DBName, "DB_NAME")
	setFromEnv(&cfg.DBPort, "DB_PORT")
	setFromEnv(&cfg.RedisURL, "REDIS_URL")
	setFromEnv(&cfg.JWTSecret, "JWT_SECRET")
	setFromEnv(&cfg.LogLevel, "LOG_LEVEL")

	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitAndTrim(origins)
	}

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
