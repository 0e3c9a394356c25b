// Package cli provides common initialization and input handling for
// cmd/exptrack.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"exptrack/internal/backend"
	"exptrack/internal/config"
	"exptrack/internal/log"
)

// SetupLogger initializes structured logging at the given level and sets it
// as the default logger.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: "exptrack",
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// ValidateConfig validates an already-loaded configuration.
// Exits the process on validation failure.
func ValidateConfig(logger *log.Logger, cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
}

// InitStore builds the configured storage backend.
// Returns the store result or exits the process on failure.
func InitStore(logger *log.Logger, cfg *config.Config) *backend.Result {
	factory := backend.NewFactory(logger)
	result, err := factory.CreateStore(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return result
}
