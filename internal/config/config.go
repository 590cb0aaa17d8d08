package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// GeminiAPIKey enables the LLM noise oracle. Empty keeps the game fully
	// offline.
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	Model         string `env:"MEMORYDIVE_MODEL" envDefault:"gemini-2.5-flash"`
	Seed          int64  `env:"MEMORYDIVE_SEED" envDefault:"0"`
	LogFile       string `env:"MEMORYDIVE_LOG_FILE" envDefault:"memory-dive.log"`
	TranscriptDir string `env:"MEMORYDIVE_TRANSCRIPT_DIR" envDefault:".transcripts"`
	HistoryLimit  int    `env:"MEMORYDIVE_HISTORY_LIMIT" envDefault:"0"`
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(dotenvFiles ...string) (*Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("MEMORYDIVE_HISTORY_LIMIT must not be negative, got %d", cfg.HistoryLimit)
	}
	return &cfg, nil
}

// OracleEnabled reports whether an API key was configured.
func (c *Config) OracleEnabled() bool {
	return c.GeminiAPIKey != ""
}
