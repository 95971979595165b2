// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	Cache  CacheConfig
	DocDB  DocDBConfig
	Vault  VaultConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host             string
	Port             int
	GinMode          string
	CORSAllowOrigins []string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds the configuration of the idempotency key store.
type CacheConfig struct {
	// Type is "redis" or "none".
	Type     string
	Host     string
	Port     string
	Password string
	DB       int
	// IdempotencyTTL is how long a replayable response is kept.
	IdempotencyTTL time.Duration
}

// Enabled reports whether a cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.Type != "" && c.Type != "none"
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type     string
	URI      string
	Database string
	// URISecret is a vault reference to a managed instance URI. When it
	// resolves it takes precedence over URI.
	URISecret      string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// VaultConfig holds vault configuration.
type VaultConfig struct {
	Type string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:             getEnv("SERVER_HOST", "0.0.0.0"),
			Port:             getEnvAsInt("SERVER_PORT", 8080),
			GinMode:          getEnv("GIN_MODE", "debug"),
			CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		Cache: CacheConfig{
			Type:           getEnv("CACHE_TYPE", "none"),
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			IdempotencyTTL: getEnvAsDuration("IDEMPOTENCY_TTL_SECONDS", 24*time.Hour),
		},
		DocDB: DocDBConfig{
			Type:           getEnv("DOCDB_TYPE", "mongodb"),
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "contact"),
			URISecret:      getEnv("MONGO_URI_SECRET", "dotenv://MONGO_URI"),
			ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT_SECONDS", 10*time.Second),
			MaxPoolSize:    uint64(getEnvAsInt("MONGODB_MAX_POOL_SIZE", 0)),
		},
		Vault: VaultConfig{
			Type: getEnv("VAULT_TYPE", "dotenv"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	switch c.DocDB.Type {
	case "mongodb", "cosmosdb", "memory":
	default:
		return fmt.Errorf("unsupported DOCDB_TYPE: %s", c.DocDB.Type)
	}
	if c.DocDB.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE must not be empty")
	}
	switch c.Cache.Type {
	case "none", "redis":
	default:
		return fmt.Errorf("unsupported CACHE_TYPE: %s", c.Cache.Type)
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration reads a number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// getEnvAsList reads a comma separated list.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
