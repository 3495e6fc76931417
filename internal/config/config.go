// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string

	// Database
	DBPath string

	// Attachments
	UploadDir string

	// Ledger behavior: when true, investment actions generate a linked
	// cash-flow entry unless the request says otherwise.
	AutoLinkCashFlow bool

	// Projection
	SimDefaultHorizon int

	// Shutdown
	ShutdownTimeout time.Duration
}

var appConfig *Config

// Load reads configuration from the environment, falling back to defaults
// suitable for a local single-user install.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:              getEnv("PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "fintrack.db"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		AutoLinkCashFlow:  getEnvBool("AUTO_LINK_CASH_FLOW", true),
		SimDefaultHorizon: getEnvInt("SIM_DEFAULT_HORIZON", 12),
		ShutdownTimeout:   10 * time.Second,
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
