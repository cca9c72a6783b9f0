// Package cli provides common CLI initialization utilities shared by
// cmd/hobu and cmd/hobu-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"hobu/internal/config"
	applog "hobu/internal/log"
	"hobu/internal/storage"
)

// SetupLogger initializes structured logging with default settings and sets
// it as the process default.
func SetupLogger(component string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Component = component
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the record store at the given path.
// Returns the store or exits the process on failure.
func InitStore(logger *applog.Logger, dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open record store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
