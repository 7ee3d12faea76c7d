package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Logging
	LogLevel  string
	LogFormat string

	// Gemini upstream
	GeminiBaseURL   string
	GeminiModel     string
	GeminiTransport string
	UpstreamTimeout time.Duration

	// CORS, empty disables it
	AllowedOrigin string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	env := getEnvOrDefault("ENV", "development")
	defaultFormat := "json"
	if env == "development" {
		defaultFormat = "console"
	}

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Env:             env,
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", defaultFormat),
		GeminiBaseURL:   getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTransport: strings.ToLower(getEnvOrDefault("GEMINI_TRANSPORT", TransportREST)),
		UpstreamTimeout: time.Duration(getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 0)) * time.Second,
		AllowedOrigin:   getEnvOrDefault("ALLOWED_ORIGIN", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.GeminiTransport {
	case TransportREST, TransportSDK:
	default:
		return fmt.Errorf("unsupported GEMINI_TRANSPORT %q (want %q or %q)", c.GeminiTransport, TransportREST, TransportSDK)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must not be negative")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
