package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from TEST_ prefixed environment variables for integration tests
// If TEST_DB_HOST is not set, returns a Config with empty values
// which allows tests to skip database-backed cases
func LoadTestConfig() (*Config, error) {
	// Try loading from project root
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	if os.Getenv("TEST_DB_HOST") == "" {
		return cfg, nil
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "TEST_"}); err != nil {
		return nil, fmt.Errorf("failed to parse test environment: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("TEST_JWT_SECRET is required")
	}

	return cfg, nil
}
