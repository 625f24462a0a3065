// Package config resolves runtime settings from .env files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/jp-covid-stats/internal/scraper"
)

// Cache backends for the report index.
const (
	CacheJSON   = "json"
	CacheSQLite = "sqlite"
)

// PatientSubdir is where MHLW workbooks are kept under the data directory.
const PatientSubdir = "10900000"

// Config holds the settings shared by every command.
type Config struct {
	DataDir   string
	LogDir    string
	Cache     string
	UserAgent string
	Timeout   time.Duration
}

// Load reads envFile (or .env in the working directory when empty), then the
// JPSTATS_* variables. A missing .env file is not an error; variables
// already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	timeoutSecs, err := strconv.Atoi(getEnv("JPSTATS_TIMEOUT_SECONDS", strconv.Itoa(int(scraper.Timeout/time.Second))))
	if err != nil {
		return nil, fmt.Errorf("JPSTATS_TIMEOUT_SECONDS: %w", err)
	}

	cfg := &Config{
		DataDir:   getEnv("JPSTATS_DATA_DIR", "data"),
		LogDir:    getEnv("JPSTATS_LOG_DIR", ""),
		Cache:     getEnv("JPSTATS_CACHE", CacheJSON),
		UserAgent: getEnv("JPSTATS_USER_AGENT", scraper.UserAgent),
		Timeout:   time.Duration(timeoutSecs) * time.Second,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags may also have overridden.
func (c *Config) Validate() error {
	if c.Cache != CacheJSON && c.Cache != CacheSQLite {
		return fmt.Errorf("invalid cache %q (must be %q or %q)", c.Cache, CacheJSON, CacheSQLite)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	return nil
}

// PatientDir is the directory holding MHLW workbooks and their index.
func (c *Config) PatientDir() string {
	return filepath.Join(c.DataDir, PatientSubdir)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
