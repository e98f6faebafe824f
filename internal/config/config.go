// Package config reads process configuration from the environment, after
// loading an optional .env file from the working directory.
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Environment string
	HTTPHost    string
	HTTPPort    int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	// DatabaseURL selects the Postgres store; empty runs on the memory store.
	DatabaseURL        string
	DBMaxConns         int32
	DBMaxConnLifetime  time.Duration
	DBConnectTimeout   time.Duration
	DBStatementTimeout time.Duration

	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	DevSeed     bool
}

// Load loads configuration from environment variables and .env file.
// Malformed numeric or duration values fall back to their defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Environment:        getenv("ENV", "local"),
		HTTPHost:           getenv("HTTP_HOST", "127.0.0.1"),
		HTTPPort:           getenvInt("HTTP_PORT", 5000),
		HTTPReadTimeout:    getenvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		HTTPWriteTimeout:   getenvDuration("HTTP_WRITE_TIMEOUT", 35*time.Second),
		DatabaseURL:        strings.TrimSpace(getenv("DATABASE_URL", "")),
		DBMaxConns:         int32(getenvInt("DB_MAX_CONNS", 15)),
		DBMaxConnLifetime:  getenvDuration("DB_MAX_CONN_LIFETIME", 1800*time.Second),
		DBConnectTimeout:   getenvDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
		DBStatementTimeout: getenvDuration("DB_STATEMENT_TIMEOUT", 30*time.Second),
		CORSOrigins:        splitList(getenv("CORS_ORIGINS", "")),
		LogLevel:           strings.TrimSpace(getenv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
		DevSeed:            getenvBool("DEV_SEED", false),
	}
}

// Addr is the listen address host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// getenvDuration accepts Go durations ("30s") or a bare number of seconds.
func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return def
		}
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
