package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
database:
  path: /tmp/shareit.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, "http://localhost:9090", cfg.Gateway.BackendURL)
	assert.Equal(t, 10, cfg.Gateway.RequestTimeoutSec)
	assert.Equal(t, 300, cfg.Cache.TTLSec)
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: shareit-test
  environment: testing
server:
  port: 7001
gateway:
  port: 7002
  backend_url: http://backend:7001
  rate_limit:
    rps: 20
    burst: 40
database:
  path: /tmp/shareit.db
cache:
  enabled: true
  ttl_sec: 60
redis:
  address: localhost:6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shareit-test", cfg.App.Name)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "http://backend:7001", cfg.Gateway.BackendURL)
	assert.Equal(t, float64(20), cfg.Gateway.RateLimit.RPS)
	assert.Equal(t, 40, cfg.Gateway.RateLimit.Burst)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 60, cfg.Cache.TTLSec)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("SHAREIT_DB_PATH", "/data/prod.db")
	t.Setenv("SHAREIT_REDIS_PASSWORD", "s3cret")

	path := writeConfigFile(t, `
database:
  path: ${SHAREIT_DB_PATH}
redis:
  password: ${SHAREIT_REDIS_PASSWORD}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/prod.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Redis.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "database: [broken")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("MissingDatabasePath", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: 7001
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database path is required")
	})

	t.Run("CacheWithoutRedis", func(t *testing.T) {
		path := writeConfigFile(t, `
database:
  path: /tmp/shareit.db
cache:
  enabled: true
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires redis.address")
	})
}
