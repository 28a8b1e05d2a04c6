package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/reform/internal/flagx"
	"github.com/dmitrijs2005/reform/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "10s" as well
// as integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	TmpDir           string         `json:"tmp_dir"`
	MaxUploadSize    int64          `json:"max_upload_size"`
	MaxMemory        int64          `json:"max_memory"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays cfg with the fields set in the file named by -c or
// -config. Fields missing from the file keep their current value.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.EndpointAddrHTTP != "" {
		cfg.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.TmpDir != "" {
		cfg.TmpDir = c.TmpDir
	}
	if c.MaxUploadSize > 0 {
		cfg.MaxUploadSize = c.MaxUploadSize
	}
	if c.MaxMemory > 0 {
		cfg.MaxMemory = c.MaxMemory
	}
	if c.ShutdownTimeout.Duration > 0 {
		cfg.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}

	return nil
}
