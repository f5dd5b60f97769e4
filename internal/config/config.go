package config

import (
	"os"
	"strconv"

	"escopo/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Ingest   IngestConfig   `validate:"required"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string `validate:"required"`
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// IngestConfig holds spreadsheet ingestion tuning. The header heuristics are
// empirical, so both knobs stay adjustable without touching matching logic.
type IngestConfig struct {
	HeaderSearchWindow int    // rows scanned from the top when looking for the header
	MinHeaderMatches   int    // mandatory columns that must match for a row to qualify
	SynonymFile        string // optional YAML override for the header synonym table
	MaxUploadBytes     int64  // multipart upload size cap
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Server = *loadServerConfig()
	config.Ingest = *loadIngestConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:     url,
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadIngestConfig() *IngestConfig {
	return &IngestConfig{
		HeaderSearchWindow: getEnvIntOrDefault("INGEST_HEADER_SEARCH_WINDOW", 10),
		MinHeaderMatches:   getEnvIntOrDefault("INGEST_MIN_HEADER_MATCHES", 3),
		SynonymFile:        getEnvOrDefault("INGEST_SYNONYM_FILE", ""),
		MaxUploadBytes:     int64(getEnvIntOrDefault("INGEST_MAX_UPLOAD_MB", 20)) * 1024 * 1024,
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Ingest.HeaderSearchWindow < 1 {
		return errors.ConfigInvalid("header search window must be at least 1")
	}
	if config.Ingest.MinHeaderMatches < 1 {
		return errors.ConfigInvalid("minimum header matches must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
