package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Listings API
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string

	// Outbound politeness
	RespectRobots bool
	RatePerSecond float64
	RateBurst     int

	// Proxy
	ProxyURL  string
	ProxyFile string // file with one proxy URL per line

	// HTTP server
	HTTPPort string
	APIKey   string

	LogLevel string // "debug", "info", "warn", "error"
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:5000/api",
		Timeout:       15 * time.Second,
		MaxRetries:    2,
		RespectRobots: true,
		RatePerSecond: 5.0,
		RateBurst:     5,
		HTTPPort:      "8080",
		LogLevel:      "info",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("ESTATE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("ESTATE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("ESTATE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("ESTATE_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("ESTATE_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("ESTATE_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("ESTATE_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("ESTATE_PROXY_URL"); v != "" {
		c.ProxyURL = v
	}
	if v := os.Getenv("ESTATE_PROXIES"); v != "" {
		c.ProxyFile = v
	}
	if v := os.Getenv("ESTATE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("ESTATE_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base url %q must start with http:// or https://", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RatePerSecond <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("rate limit needs positive rate and burst, got %v/%d", c.RatePerSecond, c.RateBurst)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog; unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
