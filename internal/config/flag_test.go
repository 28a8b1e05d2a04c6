package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-t", "/srv/tmp", "-m", "2048", "-M", "1024", "-s", "5", "-l", "debug"},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				TmpDir:           "/srv/tmp",
				MaxUploadSize:    2048,
				MaxMemory:        1024,
				ShutdownTimeout:  5 * time.Second,
				LogLevel:         "debug",
			},
		},
		{
			name: "unknown flags are filtered out",
			args: []string{"-c", "cfg.json", "-x", "1", "-a", ":1"},
			expected: &Config{
				EndpointAddrHTTP: ":1",
				TmpDir:           "uploads-tmp",
				MaxUploadSize:    32 << 20,
				MaxMemory:        8 << 20,
				ShutdownTimeout:  10 * time.Second,
				LogLevel:         "info",
			},
		},
		{
			name:    "bad number",
			args:    []string{"-m", "lots"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()

			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
