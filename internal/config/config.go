package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the server configuration, loaded from the environment
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the record store backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	// ChoiceTimeout cancels games whose choices have not both arrived
	// within the window; zero disables it
	ChoiceTimeout time.Duration `env:"CHOICE_TIMEOUT" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.StorageType != StorageTypeMemory && cfg.StorageType != StorageTypeRedis {
		return Config{}, fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q",
			cfg.StorageType, StorageTypeMemory, StorageTypeRedis)
	}
	return cfg, nil
}
