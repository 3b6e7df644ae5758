package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings of the bookstore command.
type Config struct {
	LogLevel      string `env:"BOOKSTORE_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"BOOKSTORE_LOG_FORMAT" envDefault:"text"`
	StrictRatings bool   `env:"BOOKSTORE_STRICT_RATINGS" envDefault:"false"`
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads .env and .env.local when present and parses the environment.
func Load() (Config, error) {
	loadEnvFiles()
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("parse env: BOOKSTORE_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}
