package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/sheetfolio/src/sources"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5003", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.EnableQuotes)
	assert.False(t, cfg.UsePublicAccess)
	assert.False(t, cfg.UsePositionsSheet)
	assert.Equal(t, "credentials.json", cfg.GoogleCredentialsFile)
	assert.Equal(t, 50, cfg.DefaultPageSize)
	assert.Equal(t, sources.DefaultFetchTimeout, cfg.FetchTimeout)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheetfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8081"
spreadsheet_id: from-file
worksheet_gid: "7"
use_public_access: true
cache_ttl: 30s
allowed_origins:
  - https://dash.example.com
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLE_QUOTES", "false")
	t.Setenv("ORDERS_WORKSHEET_GID", "42")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port, "env overrides file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.EnableQuotes)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"https://dash.example.com"}, cfg.AllowedOrigins)

	assert.Equal(t, sources.SheetRef{SpreadsheetID: "from-file", WorksheetGID: "7"}, cfg.TransactionsRef())
	assert.Equal(t, sources.SheetRef{SpreadsheetID: "from-file", WorksheetGID: "42"}, cfg.OrdersRef())
	assert.Equal(t, cfg.TransactionsRef(), cfg.PositionsRef())

	sc := cfg.SheetConfig()
	assert.True(t, sc.UsePublicAccess)
	assert.Equal(t, "credentials.json", sc.CredentialsFile)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("DEFAULT_PAGE_SIZE", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("DEFAULT_PAGE_SIZE", "25")
	t.Setenv("FETCH_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
