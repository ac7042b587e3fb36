package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idsync/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://openidconnect.googleapis.com/v1/userinfo", cfg.Identity.UserinfoURL)
	assert.Equal(t, 10*time.Second, cfg.Identity.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Identity.ConnectTimeout)
	assert.Equal(t, int64(1<<20), cfg.Identity.MaxBodyBytes)
	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.True(t, cfg.Swagger.Enabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IDSYNC_IDENTITY_USERINFO_URL", "http://idp.local/userinfo")
	t.Setenv("IDSYNC_IDENTITY_TIMEOUT", "3s")
	t.Setenv("IDSYNC_STORE_DRIVER", "SQLite")
	t.Setenv("IDSYNC_STORE_SQLITE_PATH", "/tmp/users.db")
	t.Setenv("IDSYNC_CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://idp.local/userinfo", cfg.Identity.UserinfoURL)
	assert.Equal(t, 3*time.Second, cfg.Identity.Timeout)
	assert.Equal(t, config.StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/users.db", cfg.Store.SQLitePath)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_SwaggerOffInProduction(t *testing.T) {
	t.Setenv("IDSYNC_SERVER_ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Server.IsProduction())
	assert.False(t, cfg.Swagger.Enabled)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("IDSYNC_STORE_DRIVER", "mongo")

	_, err := config.Load()

	assert.ErrorContains(t, err, `unknown store.driver "mongo"`)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := config.Config{
		Store: config.StoreConfig{Driver: config.StoreDriverSQLite},
	}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "identity.userinfo_url is required")
	assert.Contains(t, err.Error(), "identity.timeout must be positive")
	assert.Contains(t, err.Error(), "identity.connect_timeout must be positive")
	assert.Contains(t, err.Error(), "store.sqlite_path is required")
}
