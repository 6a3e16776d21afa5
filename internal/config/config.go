package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings, populated from environment variables.
type Config struct {
	Port string `env:"PORT" envDefault:"9090"`

	DBType     string `env:"DB_TYPE" envDefault:"sqlite"`
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort     string `env:"DB_PORT"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"inventario"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"inventario.db"`

	// Optional collaborators: static assets and fixed JSON files.
	StaticDir string `env:"STATIC_DIR"`
	DataDir   string `env:"DATA_DIR"`

	// Shared-credential gate; both must be set for auth to be enforced.
	AuthUser         string `env:"AUTH_USER"`
	AuthPasswordHash string `env:"AUTH_PASSWORD_HASH"`

	DevMode bool `env:"DEV_MODE" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// LoadEnvFile loads environment variables from a file. Variables already
// present in the environment are not overwritten.
func LoadEnvFile(filename string) {
	file, err := os.Open(filename)
	if err != nil {
		return // File doesn't exist, skip silently
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	}
}
