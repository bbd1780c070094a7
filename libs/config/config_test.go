package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_USER", "promise")
	t.Setenv("DB_NAME", "promiseroad")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimitPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 720*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, "/uploads", cfg.Uploads.URLPrefix)
	assert.Equal(t, "@every 10m", cfg.FileReapSchedule)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("JWT_EXPIRY", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		env   map[string]string
	}{
		{name: "missing JWT secret", unset: "JWT_SECRET"},
		{name: "missing DB user", unset: "DB_USER"},
		{name: "invalid port", env: map[string]string{"DB_PORT": "abc"}},
		{name: "invalid expiry", env: map[string]string{"JWT_EXPIRY": "forever"}},
		{name: "invalid reap schedule", env: map[string]string{"FILE_REAP_SCHEDULE": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			if tt.unset != "" {
				t.Setenv(tt.unset, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		database DatabaseConfig
	}{
		{name: "plain credentials", database: DatabaseConfig{Host: "db", Port: 3306, User: "u", Password: "p", DBName: "n"}},
		{name: "password with dsn delimiters", database: DatabaseConfig{Host: "db", Port: 3307, User: "u", Password: "p@ss/w?rd:x", DBName: "promiseroad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Database: tt.database}

			dsn := cfg.DSN()
			parsed, err := mysql.ParseDSN(dsn)

			require.NoError(t, err)
			assert.Equal(t, tt.database.User, parsed.User)
			assert.Equal(t, tt.database.Password, parsed.Passwd)
			assert.Equal(t, fmt.Sprintf("%s:%d", tt.database.Host, tt.database.Port), parsed.Addr)
			assert.Equal(t, tt.database.DBName, parsed.DBName)
			assert.True(t, parsed.ParseTime)
			assert.True(t, parsed.MultiStatements)
			assert.True(t, parsed.ClientFoundRows)
			assert.Contains(t, dsn, "charset=utf8mb4")
		})
	}
}
