package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/cityguesser.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:""`

	// Completion endpoint. An empty key disables the external
	// generator; city selection and hints then run on static pools.
	GrokAPIKey  string        `env:"GROK_API_KEY" envDefault:""`
	GrokBaseURL string        `env:"GROK_BASE_URL" envDefault:"https://api.x.ai/v1"`
	GrokModel   string        `env:"GROK_MODEL" envDefault:"grok-3-mini"`
	GrokTimeout time.Duration `env:"GROK_TIMEOUT" envDefault:"30s"`

	GeocodeBaseURL string        `env:"GEOCODE_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocodeTimeout time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"10s"`

	// Seeded at startup when both are set and no admin exists yet.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:""`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
