// Package config provides configuration for the application
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/promiseroad/backend/libs/validation"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Database    DatabaseConfig
	Server      ServerConfig
	Logging     LoggingConfig
	CORS        CORSConfig
	JWT         JWTConfig
	Uploads     UploadConfig
	Sentry      SentryConfig
	APIKey      string `env:"API_KEY"`
	// Cron spec for the background file reaper; empty disables it
	FileReapSchedule string `env:"FILE_REAP_SCHEDULE" envDefault:"@every 10m" validate:"omitempty,cron"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"3306"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME"`
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port               int `env:"SERVER_PORT" envDefault:"8080"`
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"720h"`
}

// UploadConfig holds the on-disk upload location and its public URL prefix
type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR" envDefault:"uploads"`
	URLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads"`
}

// SentryConfig holds error reporting settings
type SentryConfig struct {
	DSN string `env:"SENTRY_DSN"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	if msgs := validation.Default().Messages(c); len(msgs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}

	origins := c.CORS.AllowedOrigins[:0]
	for _, origin := range c.CORS.AllowedOrigins {
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORS.AllowedOrigins = origins

	return nil
}

// IsDevelopment reports whether the application runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.Database.User
	dsn.Passwd = c.Database.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port))
	dsn.DBName = c.Database.DBName
	dsn.ParseTime = true
	dsn.MultiStatements = true
	dsn.ClientFoundRows = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}
