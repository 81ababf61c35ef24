package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ma6uchi/freee-api-export/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.freee.co.jp", cfg.Freee.BaseURL)
	assert.Equal(t, "https://accounts.secure.freee.co.jp/public_api/token", cfg.Freee.TokenURL)
	assert.Equal(t, "all", cfg.Freee.EmployeesScope)
	assert.Equal(t, "freee", cfg.Freee.CredentialScope)
	assert.Equal(t, 100, cfg.Freee.PageLimit)
	assert.Equal(t, ".", cfg.Export.OutDir)
	assert.Equal(t, "freee-export.db", cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FREEE_CLIENT_ID", "env-client")
	t.Setenv("FREEE_CLIENT_SECRET", "env-secret")
	t.Setenv("FREEE_COMPANY_ID", "4242")
	t.Setenv("FREEE_EXPORT_DB_PATH", "/tmp/creds.db")
	t.Setenv("FREEE_EXPORT_OUT_DIR", "/tmp/out")
	t.Setenv("FREEE_EXPORT_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "env-client", cfg.Freee.ClientID)
	assert.Equal(t, "env-secret", cfg.Freee.ClientSecret)
	assert.Equal(t, int64(4242), cfg.Freee.CompanyID)
	assert.Equal(t, "/tmp/creds.db", cfg.DB.Path)
	assert.Equal(t, "/tmp/out", cfg.Export.OutDir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidCompanyID(t *testing.T) {
	t.Setenv("FREEE_COMPANY_ID", "not-a-number")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
freee:
  client_id: file-client
  company_id: 999
  page_limit: 50
  throttle_ms: 200
export:
  out_dir: /var/reports
  internal_tag: internal
  external_tag: external
log:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("FREEE_EXPORT_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "file-client", cfg.Freee.ClientID)
	assert.Equal(t, int64(999), cfg.Freee.CompanyID)
	assert.Equal(t, 50, cfg.Freee.PageLimit)
	assert.Equal(t, 200, cfg.Freee.ThrottleMS)
	assert.Equal(t, "/var/reports", cfg.Export.OutDir)
	assert.Equal(t, "internal", cfg.Export.InternalTag)
	assert.Equal(t, "external", cfg.Export.ExternalTag)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("freee:\n  client_id: file-client\n"), 0o644))
	t.Setenv("FREEE_EXPORT_CONFIG_PATH", path)
	t.Setenv("FREEE_CLIENT_ID", "env-client")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "env-client", cfg.Freee.ClientID)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("FREEE_EXPORT_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	require.Error(t, err)
}
