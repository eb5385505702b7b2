package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when no env file is named. It is optional.
const DefaultEnvFile = ".env"

// Config represents CLI configuration loaded from environment variables.
type Config struct {
	Endpoint      string // TRC_URL_ENDPOINT
	DefaultPreset string // TRC_DEFAULT_PRESET
	Workers       int    // TRC_WORKERS, 0 means NumCPU
	LogLevel      string // TRC_LOG_LEVEL
	LogFormat     string // TRC_LOG_FORMAT: console or json
}

// LoadConfig loads envFile into the process environment (variables already
// set win), then reads configuration from the environment and applies
// defaults. A missing DefaultEnvFile is not an error; a missing file named
// explicitly is.
func LoadConfig(envFile string) (*Config, error) {
	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Endpoint:      strings.TrimSpace(os.Getenv("TRC_URL_ENDPOINT")),
		DefaultPreset: getEnv("TRC_DEFAULT_PRESET", "thumbnail"),
		Workers:       getEnvInt("TRC_WORKERS", 0),
		LogLevel:      getEnv("TRC_LOG_LEVEL", "info"),
		LogFormat:     getEnv("TRC_LOG_FORMAT", "console"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("TRC_WORKERS must be >= 0, got %d", c.Workers)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("TRC_LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("TRC_URL_ENDPOINT must be an absolute URL, got %q", c.Endpoint)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
