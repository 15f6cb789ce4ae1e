package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `koanf:"-"`

	// Server configuration
	ServerHost            string        `koanf:"server_host"`
	ServerPort            string        `koanf:"server_port"`
	ServerReadTimeout     time.Duration `koanf:"server_read_timeout"`
	ServerWriteTimeout    time.Duration `koanf:"server_write_timeout"`
	ServerShutdownTimeout time.Duration `koanf:"server_shutdown_timeout"`
	PublicURL             string        `koanf:"public_url"`

	// Database configuration
	DBDriver          string        `koanf:"db_driver"`
	DBHost            string        `koanf:"db_host"`
	DBPort            string        `koanf:"db_port"`
	DBUser            string        `koanf:"db_user"`
	DBPassword        string        `koanf:"db_password"`
	DBName            string        `koanf:"db_name"`
	DBSSLMode         string        `koanf:"db_ssl_mode"`
	DBMaxOpenConns    int           `koanf:"db_max_open_conns"`
	DBMaxIdleConns    int           `koanf:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `koanf:"db_conn_max_lifetime"`
	SQLitePath        string        `koanf:"sqlite_path"`
	MigrationsDir     string        `koanf:"migrations_dir"`

	// Redis configuration
	RedisURL      string `koanf:"redis_url"`
	RedisHost     string `koanf:"redis_host"`
	RedisPort     string `koanf:"redis_port"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// JWT configuration
	JWTSecret string        `koanf:"jwt_secret"`
	JWTTTL    time.Duration `koanf:"jwt_ttl"`

	// Pagination
	PageSize    int `koanf:"page_size"`
	MaxPageSize int `koanf:"max_page_size"`

	// Recipe creation limit per user, enforced only when Redis is reachable
	RateLimitRecipeCreate int           `koanf:"rate_limit_recipe_create"`
	RateLimitWindow       time.Duration `koanf:"rate_limit_window"`

	// Recipe images
	S3BucketName string        `koanf:"s3_bucket_name"`
	S3Region     string        `koanf:"s3_region"`
	S3PresignTTL time.Duration `koanf:"s3_presign_ttl"`

	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	LogCaller bool   `koanf:"log_caller"`
}

// DSN builds the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// ServerAddr returns host:port for the HTTP listener
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		ServerHost:            "0.0.0.0",
		ServerPort:            "8080",
		ServerReadTimeout:     15 * time.Second,
		ServerWriteTimeout:    15 * time.Second,
		ServerShutdownTimeout: 5 * time.Second,

		DBDriver:          "postgres",
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "postgres",
		DBName:            "cookbook",
		DBSSLMode:         "disable",
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    25,
		DBConnMaxLifetime: 5 * time.Minute,
		SQLitePath:        "cookbook.db",
		MigrationsDir:     "migrations",

		RedisHost: "localhost",
		RedisPort: "6379",

		JWTSecret: defaultJWTSecret,
		JWTTTL:    24 * time.Hour,

		PageSize:    6,
		MaxPageSize: 100,

		RateLimitRecipeCreate: 30,
		RateLimitWindow:       time.Hour,

		S3Region:     "us-east-1",
		S3PresignTTL: 15 * time.Minute,

		CORSAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},

		LogLevel:  "info",
		LogFormat: "json",
	}
}

const defaultJWTSecret = "change-me"

// secretFields maps Docker secret file names to the settings they override
var secretFields = map[string]func(*Config, string){
	"db_password":    func(c *Config, v string) { c.DBPassword = v },
	"db_user":        func(c *Config, v string) { c.DBUser = v },
	"jwt_secret":     func(c *Config, v string) { c.JWTSecret = v },
	"redis_password": func(c *Config, v string) { c.RedisPassword = v },
	"redis_url":      func(c *Config, v string) { c.RedisURL = v },
	"s3_bucket_name": func(c *Config, v string) { c.S3BucketName = v },
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (CONFIG_PATH), environment variables and finally Docker secrets.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// DB_HOST -> db_host
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if err := splitListFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Environment = GetEnvironment()

	applySecrets(cfg, secretsDir())

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// listConfigPaths are slice settings that arrive from the environment as
// comma separated strings.
var listConfigPaths = []string{
	"cors_allowed_origins",
}

// splitListFields rewrites comma separated string values of list settings
// into trimmed slices. Values loaded from YAML are already slices.
func splitListFields(k *koanf.Koanf) error {
	for _, path := range listConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		items := make([]string, 0)
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		if err := k.Set(path, items); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// applySecrets overrides settings with any Docker secret files present in dir
func applySecrets(cfg *Config, dir string) {
	for name, set := range secretFields {
		if value := readSecret(dir, name); value != "" {
			set(cfg, value)
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
