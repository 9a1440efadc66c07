package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/darksuryansh/PricePilot/pkg/config"
)

// Config holds all configuration for the PricePilot server and CLI.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Shopping backend
	BackendURL        string        `env:"BACKEND_URL" envDefault:"http://localhost:5000"`
	BackendTimeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"30s"`
	BackendMaxRetries int           `env:"BACKEND_MAX_RETRIES" envDefault:"3"`
	EnrichTimeout     time.Duration `env:"ENRICH_TIMEOUT" envDefault:"15s"`

	// Scrape rate limit (requests per second, burst)
	ScrapeRPS   float64 `env:"SCRAPE_RPS" envDefault:"0.5"`
	ScrapeBurst int     `env:"SCRAPE_BURST" envDefault:"1"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Auth token storage (empty = user config dir)
	TokenPath string `env:"TOKEN_PATH"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}
	if !strings.HasPrefix(cfg.BackendURL, "http://") && !strings.HasPrefix(cfg.BackendURL, "https://") {
		return nil, fmt.Errorf("BACKEND_URL must be an http(s) URL, got %q", cfg.BackendURL)
	}
	if cfg.ScrapeRPS <= 0 {
		return nil, fmt.Errorf("SCRAPE_RPS must be positive, got %f", cfg.ScrapeRPS)
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	return cfg, nil
}
