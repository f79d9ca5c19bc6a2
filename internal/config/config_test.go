package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("FOCUSBOT_LLM_PROVIDER", "mock")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.BotToken)
	require.Equal(t, "prod", cfg.LogMode)
	require.NotEmpty(t, cfg.DatabaseDSN)
	require.Empty(t, cfg.MetricsAddr)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("FOCUSBOT_LLM_PROVIDER", "mock")

	_, err := Load()
	require.ErrorContains(t, err, "BOT_TOKEN")
}

func TestLoad_MissingProviderKey(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("FOCUSBOT_LLM_PROVIDER", "openai")
	t.Setenv("FOCUSBOT_OPENAI_API_KEY", "")

	_, err := Load()
	require.ErrorContains(t, err, "FOCUSBOT_OPENAI_API_KEY")
}

func TestLoad_PostgresOverridesSqlite(t *testing.T) {
	setRequired(t)
	t.Setenv("FOCUSBOT_DB", "local.db")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/focusbot")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost/focusbot", cfg.DatabaseDSN)
}

func TestLoad_BadLogMode(t *testing.T) {
	setRequired(t)
	t.Setenv("FOCUSBOT_LOG_MODE", "loud")

	_, err := Load()
	require.ErrorContains(t, err, "FOCUSBOT_LOG_MODE")
}
