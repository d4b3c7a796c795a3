package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
	Import        ImportConfig
	Storage       StorageConfig
}

type ServerConfig struct {
	Host               string   `env:"SERVER_HOST" envDefault:"localhost"`
	Port               int      `env:"SERVER_PORT" envDefault:"8080"`
	RateLimitPerSecond int      `env:"SERVER_RATE_LIMIT_PER_SECOND" envDefault:"100"`
	RateLimitBurst     int      `env:"SERVER_RATE_LIMIT_BURST" envDefault:"200"`
	AllowedOrigins     []string `env:"SERVER_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxUploadBytes     int64    `env:"SERVER_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

type DatabaseConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Database string `env:"POSTGRES_DB" envDefault:"statements"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type ObservabilityConfig struct {
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPort    int  `env:"METRICS_PORT" envDefault:"9090"`
}

type ImportConfig struct {
	PreviewLines int    `env:"IMPORT_PREVIEW_LINES" envDefault:"120"`
	Currency     string `env:"IMPORT_CURRENCY" envDefault:"INR"`
	Region       string `env:"IMPORT_STATUS_REGION" envDefault:"Karnataka"`
	CategoryName string `env:"IMPORT_DEFAULT_CATEGORY" envDefault:"Uncategorized"`
}

type StorageConfig struct {
	ArchiveEnabled bool          `env:"STORAGE_ARCHIVE_ENABLED" envDefault:"false"`
	LocalPath      string        `env:"STORAGE_LOCAL_PATH" envDefault:"./uploads"`
	Retention      time.Duration `env:"STORAGE_RETENTION" envDefault:"720h"`
	PruneSchedule  string        `env:"STORAGE_PRUNE_SCHEDULE" envDefault:"0 3 * * *"`
}

// Load reads a .env file when present, then environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Import.PreviewLines <= 0 {
		return nil, errors.New("IMPORT_PREVIEW_LINES must be positive")
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
