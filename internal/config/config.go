package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devFormSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	MigrateDB   bool
	FormSecret  string
	FormExpiry  time.Duration
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passform?parseTime=true"),
		MigrateDB:   getBool("DB_MIGRATE", false),
		FormSecret:  getEnv("FORM_SECRET", devFormSecret),
		FormExpiry:  getDuration("FORM_EXPIRY", 24*time.Hour),
	}

	if cfg.Env == "production" && cfg.FormSecret == devFormSecret {
		slog.Error("FORM_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
