package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Report   ReportConfig
	Archive  ArchiveConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// ReportConfig holds settings for the sales dashboard.
type ReportConfig struct {
	// Timezone is the IANA zone whose calendar days bucket sales.
	Timezone string
}

// ArchiveConfig holds settings for dashboard snapshot archiving.
type ArchiveConfig struct {
	Dir string // local directory used when S3 is disabled or unreachable
}

// S3Config holds AWS S3 configuration for archived reports.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "reports/")
}

// Load loads configuration from environment variables. A .env file in the
// working directory, when present, seeds variables that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "restaurante"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Report: ReportConfig{
			Timezone: getEnv("REPORT_TIMEZONE", "UTC"),
		},
		Archive: ArchiveConfig{
			Dir: getEnv("ARCHIVE_DIR", "data/reports"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "reports/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks each section and returns the first problem found.
func (c *Config) Validate() error {
	checks := []func() error{
		c.Server.validate,
		c.Database.validate,
		c.Auth.validate,
		c.Logger.validate,
		c.Report.validate,
		c.Archive.validate,
		c.S3.validate,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if !validPort(c.Port) {
		return fmt.Errorf("invalid server port: %d", c.Port)
	}
	return nil
}

func (c *DatabaseConfig) validate() error {
	switch {
	case c.Host == "":
		return errors.New("database host is required")
	case !validPort(c.Port):
		return fmt.Errorf("invalid database port: %d", c.Port)
	case c.User == "":
		return errors.New("database user is required")
	case c.Database == "":
		return errors.New("database name is required")
	case c.MaxConnections < 1:
		return errors.New("database max connections must be at least 1")
	case c.MinConnections < 1:
		return errors.New("database min connections must be at least 1")
	case c.MinConnections > c.MaxConnections:
		return errors.New("database min connections cannot exceed max connections")
	}
	return nil
}

func (c *AuthConfig) validate() error {
	if c.APIKey == "" {
		return errors.New("API key is required")
	}
	return nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func (c *LoggerConfig) validate() error {
	if !logLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Format)
	}
	return nil
}

func (c *ReportConfig) validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid report timezone: %s", c.Timezone)
	}
	return nil
}

func (c *ArchiveConfig) validate() error {
	if c.Dir == "" {
		return errors.New("archive directory is required")
	}
	return nil
}

// validate only applies when S3 is switched on; the file store needs no credentials.
func (c *S3Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Bucket == "" {
		return errors.New("S3 bucket is required when S3 is enabled")
	}
	if c.Region == "" {
		return errors.New("S3 region is required when S3 is enabled")
	}
	return nil
}

func validPort(p int) bool {
	return p >= 1 && p <= 65535
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Location returns the time zone used to bucket sales by calendar day.
func (c *ReportConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
