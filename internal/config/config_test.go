package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("values from file", func(t *testing.T) {
		// Given: a config file with every section set
		path := writeConfig(t, `
log-level: debug
http-port: "9191"
socket-port: "8181"
allowed-origins: ["example.com"]
redis:
  enabled: true
  host: cache
  port: "6380"
  results-limit: 5
match:
  forfeit-after: 30s
  send-buffer: 8
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: every field is populated
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9191", conf.HTTPPort)
		assert.Equal(t, "8181", conf.SocketPort)
		assert.Equal(t, []string{"example.com"}, conf.AllowedOrigins)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 5, conf.Redis.ResultsLimit)
		assert.Equal(t, 30*time.Second, conf.Match.ForfeitAfter)
		assert.Equal(t, 8, conf.Match.SendBuffer)
	})

	t.Run("defaults", func(t *testing.T) {
		conf, err := Load(writeConfig(t, "log-level: info\n"))

		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, 100, conf.Redis.ResultsLimit)
		assert.Zero(t, conf.Match.ForfeitAfter)
		assert.Equal(t, 64, conf.Match.SendBuffer)
	})

	t.Run("negative send buffer is rejected", func(t *testing.T) {
		conf, err := Load(writeConfig(t, "match:\n  send-buffer: -4\n"))

		require.ErrorIs(t, err, ErrInvalidSendBuffer)
		assert.Nil(t, conf)
	})

	t.Run("zero send buffer falls back to the default", func(t *testing.T) {
		conf, err := Load(writeConfig(t, "match:\n  send-buffer: 0\n"))

		require.NoError(t, err)
		assert.Equal(t, 64, conf.Match.SendBuffer)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})

	t.Run("MustLoad panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
