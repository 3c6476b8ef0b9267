package config

import (
	"fmt"
	"time"

	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/rational"
)

// DefaultsConfig holds the selections a new plan starts from
type DefaultsConfig struct {
	Belt      string `mapstructure:"belt" validate:"required"`
	Assembler string `mapstructure:"assembler" validate:"required"`
	Smelter   string `mapstructure:"smelter" validate:"required"`
	Item      string `mapstructure:"item" validate:"required"`

	// Rate is items per minute for new targets, written as "60" or "45/2".
	Rate string `mapstructure:"rate" validate:"required,rational"`
}

// Factory converts the section into engine defaults
func (d DefaultsConfig) Factory() (factory.Defaults, error) {
	rate, err := rational.Parse(d.Rate)
	if err != nil {
		return factory.Defaults{}, fmt.Errorf("defaults.rate: %w", err)
	}
	return factory.Defaults{
		Belt:      d.Belt,
		Assembler: d.Assembler,
		Smelter:   d.Smelter,
		Item:      d.Item,
		Rate:      rate,
	}, nil
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// DatabaseConfig holds the saved plan database location
type DatabaseConfig struct {
	// SQLite file path, or ":memory:"
	Path string `mapstructure:"path" validate:"required"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`

	// requests per second and burst size
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"min=1"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
