package config

import (
	"os"
	"strconv"

	"chartpipe/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Branding BrandingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	MaxUploadMB    int
	ProfileWorkers int
}

// DataConfig holds data processing settings
type DataConfig struct {
	// ChartFile optionally preloads a workbook at startup (CLI-style use)
	ChartFile string
	// DefaultHeaderRow is the header row index assumed until the user
	// adjusts it
	DefaultHeaderRow int
}

// BrandingConfig is opaque to the pipeline; it is passed through to the
// rendering layer untouched
type BrandingConfig struct {
	WatermarkText string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			MaxUploadMB:    getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
			ProfileWorkers: getEnvIntOrDefault("PROFILE_WORKERS", 4),
		},
		Data: DataConfig{
			ChartFile:        getEnvOrDefault("CHART_FILE", ""),
			DefaultHeaderRow: getEnvIntOrDefault("HEADER_ROW", 0),
		},
		Branding: BrandingConfig{
			WatermarkText: getEnvOrDefault("WATERMARK_TEXT", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.DefaultHeaderRow < 0 {
		return errors.ConfigInvalid("HEADER_ROW must be non-negative")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Server.ProfileWorkers <= 0 {
		return errors.ConfigInvalid("PROFILE_WORKERS must be positive")
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
