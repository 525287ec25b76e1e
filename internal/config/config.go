package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend selectors
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds server configuration, loaded from a yaml file with
// environment variable overrides
type Config struct {
	LogLevel string `yaml:"log-level" env:"SALVO_LOG_LEVEL" env-default:"info"`
	HTTPPort int    `yaml:"http-port" env:"SALVO_HTTP_PORT" env-default:"8080"`
	Storage  string `yaml:"storage" env:"SALVO_STORAGE" env-default:"memory"`
	Redis    Redis  `yaml:"redis"`
}

// Redis holds connection settings for the redis storage backend
type Redis struct {
	URL          string `yaml:"url" env:"SALVO_REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize     int    `yaml:"pool-size" env:"SALVO_REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int    `yaml:"min-idle-conns" env:"SALVO_REDIS_MIN_IDLE_CONNS" env-default:"2"`
}

// Load reads configuration from the given yaml file, falling back to
// environment variables and defaults when path is empty
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}
	return cfg, nil
}
