// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the HTTP service configuration. Only cmd/server loads this;
// the demo binary takes no configuration at all.
type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	TracingEnabled    bool          `env:"TRACING_ENABLED" envDefault:"false"`
	ReviewAmountLimit float64       `env:"REVIEW_AMOUNT_LIMIT" envDefault:"10000"`
}

// Load reads configuration from the environment, applying defaults for
// unset variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
