package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDebug          = false
	defaultTimeout        = 10 * time.Second
	defaultAllowedOrigins = "*"
	defaultPort           = 8080
	defaultDataDir        = "."
	defaultPrefork        = false

	defaultRetryCount        = 3
	defaultRetryWaitMin      = 4 * time.Second
	defaultRetryWaitMax      = 10 * time.Second
	defaultCacheTTL          = time.Hour
	defaultCachePruneEvery   = 15 * time.Minute
	defaultDBFilePermissions = 0666
)

type Config struct {
	Debug          bool
	Timeout        time.Duration
	AllowedOrigins []string
	Port           int
	DataDir        string
	Prefork        bool

	RetryCount        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	CacheTTL          time.Duration
	CachePruneEvery   time.Duration
	DBFilePermissions os.FileMode
}

func Load() (*Config, error) {
	cfg := &Config{
		Debug:             defaultDebug,
		Timeout:           defaultTimeout,
		AllowedOrigins:    splitOrigins(defaultAllowedOrigins),
		Port:              defaultPort,
		DataDir:           getEnvOrDefault("DATA_DIR", defaultDataDir),
		Prefork:           defaultPrefork,
		RetryCount:        defaultRetryCount,
		RetryWaitMin:      defaultRetryWaitMin,
		RetryWaitMax:      defaultRetryWaitMax,
		CacheTTL:          defaultCacheTTL,
		CachePruneEvery:   defaultCachePruneEvery,
		DBFilePermissions: defaultDBFilePermissions,
	}

	if err := cfg.loadOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadOverrides() error {
	if value := os.Getenv("DEBUG"); value != "" {
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing DEBUG: %w", err)
		}
		c.Debug = debug
	}

	if value := os.Getenv("TIMEOUT"); value != "" {
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parsing TIMEOUT: %w", err)
		}
		if seconds <= 0 {
			return fmt.Errorf("TIMEOUT must be positive, got %s", value)
		}
		c.Timeout = time.Duration(seconds * float64(time.Second))
	}

	if value := os.Getenv("ALLOWED_ORIGINS"); value != "" {
		c.AllowedOrigins = splitOrigins(value)
	}

	if value := os.Getenv("PORT"); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing PORT: %w", err)
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("PORT out of range: %d", port)
		}
		c.Port = port
	}

	if value := os.Getenv("PREFORK"); value != "" {
		prefork, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing PREFORK: %w", err)
		}
		c.Prefork = prefork
	}

	return nil
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c *Config) DBPath() string {
	return c.DataDir + "/cache.db"
}

// OriginsCSV returns the allow-list in the comma-separated form the
// CORS middleware expects.
func (c *Config) OriginsCSV() string {
	return strings.Join(c.AllowedOrigins, ",")
}

// Wildcard reports whether every origin is permitted.
func (c *Config) Wildcard() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}
