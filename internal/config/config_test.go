package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("NODE_ID", "")
	t.Setenv("BALANCE_REFRESH_INTERVAL", "")
	t.Setenv("STATEMENT_LOGO_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "BL", cfg.BillPrefix)
	assert.Equal(t, "RC", cfg.ReceiptPrefix)
	assert.Equal(t, int64(1), cfg.NodeID)
	assert.Equal(t, time.Hour, cfg.BalanceRefreshInterval)
	assert.Equal(t, "dev-secret-change-in-production", cfg.JWTSecret)
	assert.False(t, cfg.EmailEnabled())
	assert.Empty(t, cfg.StatementLogoPath)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoad_RequiresSecretInProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/frontdesk")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required in production")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/frontdesk")
	t.Setenv("NODE_ID", "7")
	t.Setenv("BALANCE_REFRESH_INTERVAL", "15m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("STATEMENT_LOGO_PATH", "/etc/frontdesk/logo.png")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.NodeID)
	assert.Equal(t, 15*time.Minute, cfg.BalanceRefreshInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, "/etc/frontdesk/logo.png", cfg.StatementLogoPath)
}

func TestLoad_RejectsOutOfRangeNode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/frontdesk")
	t.Setenv("NODE_ID", "4096")

	_, err := Load()
	assert.Error(t, err)
}
