// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port            int
	DBPath          string
	LogLevel        string
	CORSAllowOrigin string
	MetricsPath     string
}

// Load reads settings from the environment, after merging in any of the
// given dotenv files (".env" when none are given). Missing files are
// ignored; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return Config{
		Port:            getInt("PORT", 8080),
		DBPath:          getEnv("DB_PATH", "./data/sitesettle.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		MetricsPath:     getEnv("METRICS_PATH", "/metrics"),
	}, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
