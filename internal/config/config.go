package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Catalog sources
const (
	CatalogSourceFiles    = "files"
	CatalogSourcePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	CatalogSource        string
	CatalogManifest      string
	CatalogWatchInterval time.Duration

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	SessionCacheSize int
	SessionTTL       time.Duration

	WebDir string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		ServiceName:     getEnv("SERVICE_NAME", "cs2-tradeup"),
		Version:         getEnv("VERSION", "dev"),
		CatalogSource:   getEnv("CATALOG_SOURCE", CatalogSourceFiles),
		CatalogManifest: getEnv("CATALOG_MANIFEST", "data/manifest.yaml"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "tradeup"),
		WebDir:          getEnv("WEB_DIR", "web"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.SessionCacheSize, err = getEnvInt("SESSION_CACHE_SIZE", 10000); err != nil {
		return nil, err
	}
	if cfg.SessionCacheSize <= 0 {
		return nil, fmt.Errorf("SESSION_CACHE_SIZE must be positive, got %d", cfg.SessionCacheSize)
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CatalogWatchInterval, err = getEnvDuration("CATALOG_WATCH_INTERVAL", 0); err != nil {
		return nil, err
	}

	switch cfg.CatalogSource {
	case CatalogSourceFiles, CatalogSourcePostgres:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q",
			CatalogSourceFiles, CatalogSourcePostgres, cfg.CatalogSource)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s value: negative duration %s", key, d)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
