package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("server_port", "is required")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("db_host", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("db_name", "is required for postgres")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("sqlite_path", "is required for sqlite")
		}
	default:
		add("db_driver", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("jwt_secret", "is required")
	}
	if cfg.JWTTTL <= 0 {
		add("jwt_ttl", "must be positive")
	}

	if cfg.PageSize < 1 {
		add("page_size", "must be at least 1")
	}
	if cfg.MaxPageSize < cfg.PageSize {
		add("max_page_size", "must not be smaller than page_size")
	}

	if cfg.RateLimitRecipeCreate < 0 {
		add("rate_limit_recipe_create", "must not be negative")
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		add("log_format", "must be json or console")
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == defaultJWTSecret {
			add("jwt_secret", "must be set in production")
		}
		if cfg.DBDriver != "postgres" {
			add("db_driver", "production requires postgres")
		}
		if cfg.DBPassword == "" {
			add("db_password", "is required in production")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
