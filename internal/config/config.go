// Package config manages application configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DBHost        string
	DBPort        string
	DBUsername    string
	DBPassword    string
	DBDatabase    string
	PostgresImage string
	ContainerName string
	Timezone      string
	OpenAIKey     string
}

// Load reads configuration from a .env file in the specified directory.
// If the .env file doesn't exist, it falls back to global config
// (~/.dayslot/config), then to environment variables and defaults.
func Load(dir string) (*Config, error) {
	envPath := GetConfigPath(dir)

	localEnvMap, err := godotenv.Read(envPath)
	if err != nil {
		localEnvMap = make(map[string]string)
	}

	globalEnvMap, err := godotenv.Read(GetGlobalConfigPath())
	if err != nil {
		globalEnvMap = make(map[string]string)
	}

	// Precedence: local > global > env > default
	getValueWithFallback := func(key, defaultValue string) string {
		if value, ok := localEnvMap[key]; ok && value != "" {
			return value
		}
		if value, ok := globalEnvMap[key]; ok && value != "" {
			return value
		}
		if value := os.Getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	getValueWithFallbackNoDefault := func(key string) string {
		if value, ok := localEnvMap[key]; ok && value != "" {
			return value
		}
		if value, ok := globalEnvMap[key]; ok && value != "" {
			return value
		}
		return os.Getenv(key)
	}

	cfg := &Config{
		DBHost:        getValueWithFallback("DB_HOST", "localhost"),
		DBPort:        getValueWithFallback("DB_PORT", "5432"),
		DBUsername:    getValueWithFallback("DB_USERNAME", "dayslot"),
		DBPassword:    getValueWithFallbackNoDefault("DB_PASSWORD"),
		DBDatabase:    getValueWithFallback("DB_DATABASE", "dayslot"),
		PostgresImage: getValueWithFallback("POSTGRES_IMAGE", "postgres:17-alpine"),
		ContainerName: getValueWithFallback("POSTGRES_CONTAINER_NAME", "dayslot-postgres"),
		Timezone:      getValueWithFallback("DAYSLOT_TIMEZONE", "America/Chicago"),
		OpenAIKey:     getValueWithFallbackNoDefault("OPENAI_API_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
// OpenAIKey is optional: only screenshot extraction needs it.
func (c *Config) Validate() error {
	var missing []string

	if c.DBHost == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.DBPort == "" {
		missing = append(missing, "DB_PORT")
	}
	if c.DBUsername == "" {
		missing = append(missing, "DB_USERNAME")
	}
	if c.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if c.DBDatabase == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if c.Timezone == "" {
		missing = append(missing, "DAYSLOT_TIMEZONE")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration fields: %s", strings.Join(missing, ", "))
	}

	return nil
}

// GetConfigPath returns the full path to the .env file in the given directory.
func GetConfigPath(dir string) string {
	return filepath.Join(dir, ".env")
}

// Set updates or creates a configuration value in the .env file.
func Set(dir, key, value string) error {
	envPath := GetConfigPath(dir)

	envMap, err := godotenv.Read(envPath)
	if err != nil {
		envMap = make(map[string]string)
	}

	envMap[key] = value

	return godotenv.Write(envMap, envPath)
}

// Get retrieves a configuration value from the .env file.
func Get(dir, key string) (string, error) {
	envPath := GetConfigPath(dir)

	envMap, err := godotenv.Read(envPath)
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	value, ok := envMap[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}

	return value, nil
}
