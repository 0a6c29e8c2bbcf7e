package config

import (
	"os"
	"strconv"

	"gradstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	Detection DetectionConfig
	Database  DatabaseConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// CacheConfig holds analysis result cache settings
type CacheConfig struct {
	TTLSeconds int
	MaxEntries int
}

// DetectionConfig holds heuristic-detection tuning knobs
type DetectionConfig struct {
	// SampleCap bounds the sample used by the normality test; larger
	// columns are subsampled and the result is approximate.
	SampleCap int
	// MaxCategories is the distinct-value ceiling for a column to count
	// as categorical.
	MaxCategories int
	// Seed fixes the subsampling and k-means RNG so repeated runs over
	// the same dataset produce identical profiles.
	Seed int64
}

// DatabaseConfig holds optional analysis-history storage settings
type DatabaseConfig struct {
	URL string
}

// ProfilingConfig holds ops/debug server settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Cache: CacheConfig{
			TTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 3600),
			MaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 100),
		},
		Detection: DetectionConfig{
			SampleCap:     getEnvInt("DETECT_SAMPLE_CAP", 5000),
			MaxCategories: getEnvInt("DETECT_MAX_CATEGORIES", 10),
			Seed:          int64(getEnvInt("DETECT_SEED", 42)),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Profiling: ProfilingConfig{
			Port:    getEnv("PROFILING_PORT", "6060"),
			Enabled: getEnvBool("PROFILING_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(c *Config) error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if c.Cache.TTLSeconds <= 0 {
		return errors.ConfigInvalid("CACHE_TTL_SECONDS must be positive")
	}
	if c.Cache.MaxEntries <= 0 {
		return errors.ConfigInvalid("CACHE_MAX_ENTRIES must be positive")
	}
	if c.Detection.SampleCap < 3 {
		return errors.ConfigInvalid("DETECT_SAMPLE_CAP must be at least 3")
	}
	if c.Detection.MaxCategories < 2 {
		return errors.ConfigInvalid("DETECT_MAX_CATEGORIES must be at least 2")
	}
	return nil
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as bool or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
