package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch Environment(os.Getenv("ENV")) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether cfg was loaded for production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsDevelopment reports whether cfg was loaded for local development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}
