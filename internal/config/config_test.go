package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REMINDER_CHECK_INTERVAL_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "tasks.db", cfg.DatabaseURL)
	assert.Equal(t, 60*time.Second, cfg.ScanInterval)
}

func TestLoadRequiresTelegramToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadScanInterval(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")

	t.Setenv("REMINDER_CHECK_INTERVAL_SECONDS", "15")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.ScanInterval)

	// Garbage or non-positive values fall back to the default.
	t.Setenv("REMINDER_CHECK_INTERVAL_SECONDS", "abc")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.ScanInterval)

	t.Setenv("REMINDER_CHECK_INTERVAL_SECONDS", "-5")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.ScanInterval)
}
