package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/bloglist-backend/internal/data/db"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "3003", cfg.Port)
	assert.Equal(t, db.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Otel.Enabled)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloglist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "4000"
db:
  driver: sqlite
  sqlite:
    path: /tmp/blogs.db
access_token_ttl: 30m
cors_allowed_origins:
  - https://blogs.example.com
redis:
  addr: localhost:6379
otel:
  enabled: true
  sample_ratio: 0.5
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "5000")
	t.Setenv("JWT_SECRET_KEY", "from-env")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/blogs.db", cfg.DB.SQLite.Path)
	assert.Equal(t, "localhost", cfg.DB.Postgres.Host)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "from-env", cfg.JWTSecretKey)
	assert.Equal(t, []string{"https://blogs.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Otel.Enabled)
	assert.Equal(t, 0.5, cfg.Otel.SampleRatio)
	assert.Equal(t, map[string]string{"x-api-key": "abc"}, cfg.Otel.Headers)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mongodb")
		_, err := LoadConfig(nil)
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := LoadConfig(nil)
		assert.Error(t, err)
	})
	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0o600))
		t.Setenv("CONFIG_FILE", path)
		_, err := LoadConfig(nil)
		assert.Error(t, err)
	})
}
