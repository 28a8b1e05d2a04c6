// Package config loads the server configuration: defaults first, then an
// optional JSON file, then command-line flags.
package config

import "time"

// Config holds runtime settings of the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP endpoint.
//   - TmpDir: staging directory of upload fields. Relative paths are taken
//     from the working directory.
//   - MaxUploadSize: limit of a request body in bytes, also applied to
//     every single file.
//   - MaxMemory: bytes of a multipart body kept in memory while parsing.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - LogLevel: one of debug, info, warn, error.
type Config struct {
	EndpointAddrHTTP string
	TmpDir           string
	MaxUploadSize    int64
	MaxMemory        int64
	ShutdownTimeout  time.Duration
	LogLevel         string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.TmpDir = "uploads-tmp"
	c.MaxUploadSize = 32 << 20
	c.MaxMemory = 8 << 20
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config in
// args, then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
