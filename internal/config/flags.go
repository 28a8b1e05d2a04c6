package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/reform/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-t string   staging directory of upload fields
//	-m int      request size limit, bytes
//	-M int      multipart memory limit, bytes
//	-s int      shutdown timeout, seconds
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-m", "-M", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&cfg.TmpDir, "t", cfg.TmpDir, "upload staging directory")
	fs.Int64Var(&cfg.MaxUploadSize, "m", cfg.MaxUploadSize, "max request size (bytes)")
	fs.Int64Var(&cfg.MaxMemory, "M", cfg.MaxMemory, "max multipart memory (bytes)")
	shutdown := fs.Int("s", int(cfg.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.ShutdownTimeout = time.Duration(*shutdown) * time.Second
	return nil
}
