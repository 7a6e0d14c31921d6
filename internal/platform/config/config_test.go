package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.BackendWorkbook, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.StoreLockRetries)
	assert.Equal(t, 2*time.Second, cfg.StoreLockWait)
	assert.Equal(t, "cards.xlsx", cfg.WorkbookPath)
	assert.Equal(t, "Inventory", cfg.WorkbookSheet)
	assert.Equal(t, 60, cfg.SheetsWritesPerMinute)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL)
	assert.Equal(t, "USD", cfg.CurrencyCode)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "120-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "Sheets")
	t.Setenv("STORE_LOCK_RETRIES", "0")
	t.Setenv("STORE_LOCK_WAIT", "250ms")
	t.Setenv("SHEETS_SPREADSHEET_ID", "abc123")
	t.Setenv("SNAPSHOT_TTL", "2m")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CURRENCY_CODE", "eur")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.BackendSheets, cfg.StoreBackend)
	assert.Equal(t, 0, cfg.StoreLockRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreLockWait)
	assert.Equal(t, "abc123", cfg.SheetsSpreadsheetID)
	assert.Equal(t, 2*time.Minute, cfg.SnapshotTTL)
	assert.Equal(t, "EUR", cfg.CurrencyCode)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SNAPSHOT_TTL", "soon")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":       {"STORE_BACKEND": "postgres"},
		"cross-store fallback":  {"STORE_BACKEND": "workbook", "STORE_FALLBACK": "memory"},
		"negative lock retries": {"STORE_LOCK_RETRIES": "-1"},
		"sheets without id":     {"STORE_BACKEND": "sheets", "SHEETS_SPREADSHEET_ID": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}
