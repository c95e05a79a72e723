package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries all process settings. It is built once at startup and
// injected into the components that need it.
type Config struct {
	Environment    string
	ServiceName    string
	ServiceVersion string

	HTTPAddr string

	DatabaseDriver string
	DatabaseDSN    string

	LogLevel string

	TracingEnabled       bool
	TracingEndpoint      string
	TracingProtocol      string
	TracingSamplingRatio float64
}

// Load reads configuration from the environment. A .env file, when
// present, is loaded first so local development needs no exports.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:    getenv("APP_ENV", "development"),
		ServiceName:    getenv("SERVICE_NAME", "mobilepoint"),
		ServiceVersion: getenv("SERVICE_VERSION", "dev"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DatabaseDriver: strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DatabaseDSN:    getenv("DB_DSN", "mobilepoint.db"),

		LogLevel: getenv("LOG_LEVEL", "info"),

		TracingEnabled:  getenvBool("TRACING_ENABLED", false),
		TracingEndpoint: getenv("OTLP_ENDPOINT", ""),
		TracingProtocol: getenv("OTLP_PROTOCOL", "grpc"),
	}
	cfg.TracingSamplingRatio = getenvFloat("TRACING_SAMPLING_RATIO", 0.1)
	return cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
