package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "uploads-tmp", c.TmpDir)
	assert.Equal(t, int64(32<<20), c.MaxUploadSize)
	assert.Equal(t, int64(8<<20), c.MaxMemory)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_NoArgsUsesDefaults(t *testing.T) {
	c, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http": "json:1",
		"tmp_dir":            "/json/tmp",
		"log_level":          "warn",
	})

	c, err := LoadConfig([]string{"-c", path, "-a", "flag:2"})
	require.NoError(t, err)

	assert.Equal(t, "flag:2", c.EndpointAddrHTTP, "flags override the file")
	assert.Equal(t, "/json/tmp", c.TmpDir, "the file overrides defaults")
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, int64(32<<20), c.MaxUploadSize, "unset keys keep defaults")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig([]string{"-config", "/does/not/exist.json"})
	require.Error(t, err)
}
