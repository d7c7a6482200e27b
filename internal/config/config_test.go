package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "league.db", cfg.Database.DSN())
	assert.True(t, cfg.SecureCookies)
	assert.False(t, cfg.Slack.Enabled())
	assert.False(t, cfg.PubSub.Enabled())
	assert.False(t, cfg.SES.Enabled())
}

func TestLoadIntegrations(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	t.Setenv("DB_DRIVER", "turso")
	t.Setenv("DB_URL", "libsql://league.turso.io")
	t.Setenv("DB_AUTH_TOKEN", "token")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-1")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("PUBSUB_PROJECT_ID", "class-league")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "libsql://league.turso.io", cfg.Database.DSN())
	assert.Equal(t, "token", cfg.Database.AuthToken)
	assert.True(t, cfg.Slack.Enabled())
	assert.True(t, cfg.PubSub.Enabled())
	assert.Equal(t, "class-league-", cfg.PubSub.TopicPrefix)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "short")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("remote driver without url", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "0123456789abcdef")
		t.Setenv("DB_DRIVER", "postgres")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "0123456789abcdef")
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load()
		assert.Error(t, err)
	})
}
