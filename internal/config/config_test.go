package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DRAFT_DB_PATH", "/tmp/drafts")
	t.Setenv("PLATFORM_FEE_RATE", "0.07")

	cfg := LoadConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "/tmp/drafts", cfg.DraftDBPath)
	assert.True(t, cfg.PlatformFeeRate.Equal(decimal.NewFromFloat(0.07)))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("APP_PORT", "")
	t.Setenv("DRAFT_DB_PATH", "")
	t.Setenv("PLATFORM_FEE_RATE", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "data/drafts", cfg.DraftDBPath)
	assert.True(t, cfg.PlatformFeeRate.Equal(decimal.NewFromFloat(0.05)))
}
