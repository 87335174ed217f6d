package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the process configuration resolved from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	DevSeed     bool
}

// Load reads an optional .env file and resolves the configuration from the
// environment with sensible defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on system env variables")
	}
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		DevSeed:     getEnv("DEV_SEED", "") == "1" || getEnv("DEV_SEED", "") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
