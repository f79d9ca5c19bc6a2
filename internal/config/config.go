// Package config loads process configuration from a .env file and the
// environment. Only missing startup credentials are fatal; everything else
// has a default.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"focusbot/internal/llm"
	"focusbot/internal/store"
)

// Config is everything the process needs to start.
type Config struct {
	// BotToken is the Telegram bot API token. Required.
	BotToken string

	// DatabaseDSN selects the store backend: a postgres URL via
	// DATABASE_URL, or a sqlite path via FOCUSBOT_DB. Defaults to the
	// per-user sqlite location.
	DatabaseDSN string

	// MetricsAddr is the listen address of the ops endpoint. Empty
	// disables it.
	MetricsAddr string

	// LogMode is "dev" for console output or "prod" for JSON.
	LogMode string

	LLM llm.Config
}

// Load reads .env (when present) and the environment, then validates.
func Load() (*Config, error) {
	// Absence of .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		LogMode:     getenvDefault("FOCUSBOT_LOG_MODE", "prod"),
		LLM:         llm.ConfigFromEnv(),
	}

	switch {
	case os.Getenv("DATABASE_URL") != "":
		cfg.DatabaseDSN = os.Getenv("DATABASE_URL")
	case os.Getenv("FOCUSBOT_DB") != "":
		cfg.DatabaseDSN = os.Getenv("FOCUSBOT_DB")
	default:
		cfg.DatabaseDSN = store.DefaultPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required settings.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.LogMode != "dev" && c.LogMode != "prod" {
		return fmt.Errorf("FOCUSBOT_LOG_MODE must be dev or prod, got %q", c.LogMode)
	}
	return c.LLM.Validate()
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
