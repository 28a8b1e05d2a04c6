package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http": "www.example:9000",
		"tmp_dir":            "/var/tmp/uploads",
		"max_upload_size":    1024,
		"max_memory":         512,
		"shutdown_timeout":   "3s",
		"log_level":          "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, Config{
			EndpointAddrHTTP: "www.example:9000",
			TmpDir:           "/var/tmp/uploads",
			MaxUploadSize:    1024,
			MaxMemory:        512,
			ShutdownTimeout:  3 * time.Second,
			LogLevel:         "debug",
		}, *cfg)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg

		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, want, *cfg)
	})

	t.Run("integer nanoseconds", func(t *testing.T) {
		p := writeTempJSON(t, map[string]any{"shutdown_timeout": int64(2 * time.Second)})
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-c", p}))
		assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("invalid json", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(p, []byte("{"), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", p}))
	})

	t.Run("invalid duration", func(t *testing.T) {
		p := writeTempJSON(t, map[string]any{"shutdown_timeout": "soon"})
		require.Error(t, parseJson(&Config{}, []string{"-c", p}))
	})
}
