// Package config loads process configuration from the environment.
//
// Everything is read once at startup into an explicit Config struct that is
// passed by reference to whoever needs it. There are no package-level
// mutable globals — tests construct their own Config directly.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds server configuration.
type Config struct {
	Port         int    // HTTP listen port
	DBPath       string // path to the SQLite database file
	StaticDir    string // directory served for non-/api paths
	CookieSecure bool   // set the Secure flag on the session cookie

	// Used by cmd/seed only.
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from environment variables, applying defaults
// where a variable is unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          8801,
		DBPath:        getEnv("DB_PATH", "data/vetaris.db"),
		StaticDir:     getEnv("STATIC_DIR", "public"),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("config: invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
