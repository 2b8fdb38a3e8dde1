package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultScanInterval = 60 * time.Second

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken string
	OpenAIAPIKey  string
	OpenAIModel   string
	DatabaseURL   string
	ScanInterval  time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// An empty OpenAIAPIKey is not an error: it activates the rule-based
// classifier fallback.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ScanInterval:  parseSeconds(strings.TrimSpace(os.Getenv("REMINDER_CHECK_INTERVAL_SECONDS"))),
	}

	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tasks.db"
	}

	if cfg.ScanInterval == 0 {
		cfg.ScanInterval = defaultScanInterval
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parseSeconds(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
