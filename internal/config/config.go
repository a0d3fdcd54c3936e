// Package config loads runtime settings from the environment, with an
// optional .env overlay for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is everything the process needs at startup. All fields are
// optional: with none set the server listens on 8080 and keeps its
// records in memory.
type Config struct {
	Port string

	// DatabaseDSN selects Postgres; SQLitePath selects the embedded
	// file store. DatabaseDSN wins when both are set.
	DatabaseDSN string
	SQLitePath  string

	LogLevel  string
	LogFormat string
	AppName   string
}

func Load() Config {
	// a missing .env is fine, the environment may carry everything
	_ = godotenv.Load()

	return Config{
		Port:        envOr("PORT", "8080"),
		DatabaseDSN: os.Getenv("DB_DSN"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		AppName:     envOr("APP_NAME", "pet-boarding"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
