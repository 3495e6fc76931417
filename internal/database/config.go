package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds database configuration. The store is a local SQLite file.
type Config struct {
	Path          string
	MigrationsDir string
}

// NewConfig creates a new database configuration from the environment.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist; defaults apply.
		fmt.Println("Warning: .env file not found")
	}

	return &Config{
		Path:          getEnv("DB_PATH", "fintrack.db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}, nil
}

// DSN returns the SQLite connection string for GORM.
func (c *Config) DSN() string {
	return c.Path
}

// MigrateURL returns the database URL used by golang-migrate.
func (c *Config) MigrateURL() string {
	return "sqlite3://" + c.Path
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
