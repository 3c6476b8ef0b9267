package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	// Plan defaults
	if cfg.Defaults.Belt == "" {
		cfg.Defaults.Belt = "belt1"
	}
	if cfg.Defaults.Assembler == "" {
		cfg.Defaults.Assembler = "assembler1"
	}
	if cfg.Defaults.Smelter == "" {
		cfg.Defaults.Smelter = "smelter1"
	}
	if cfg.Defaults.Item == "" {
		cfg.Defaults.Item = "iron_ingot"
	}
	if cfg.Defaults.Rate == "" {
		cfg.Defaults.Rate = "60"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	// Database defaults
	if cfg.Database.Path == "" {
		cfg.Database.Path = "planner.db"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 50
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 100
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
}
