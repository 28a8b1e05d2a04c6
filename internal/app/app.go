// Package app wires configuration, logging, upload staging and the HTTP
// server together and runs them until the process is told to stop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5/util"

	"github.com/dmitrijs2005/reform/internal/config"
	"github.com/dmitrijs2005/reform/internal/filex"
	"github.com/dmitrijs2005/reform/internal/logging"
	"github.com/dmitrijs2005/reform/internal/upload"
	"github.com/dmitrijs2005/reform/internal/web"
)

// spoolSubdir holds request files until they are staged or discarded. Its
// leading dot keeps it from ever matching an upload handle.
const spoolSubdir = ".incoming"

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
	tmpDir string
}

// NewApp prepares the staging directory and the HTTP server. Logs are
// written as JSON to logOut.
func NewApp(c *config.Config, logOut io.Writer) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := logging.NewJSONLogger(logOut, level)

	tmpDir, err := filex.EnsureDir(c.TmpDir)
	if err != nil {
		return nil, fmt.Errorf("staging dir: %w", err)
	}

	uploads := upload.NewType(tmpDir, upload.WithLogger(logger))

	// files left behind by a previous process were never staged
	spoolDir := filepath.Join(tmpDir, spoolSubdir)
	if err := util.RemoveAll(uploads.Filesystem(), spoolDir); err != nil {
		return nil, fmt.Errorf("clean spool dir: %w", err)
	}

	srv := web.NewServer(uploads, logger, spoolDir, c.MaxUploadSize, c.MaxMemory)

	return &App{
		config: c,
		logger: logger,
		tmpDir: tmpDir,
		server: &http.Server{
			Addr:              c.EndpointAddrHTTP,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// TmpDir returns the absolute staging directory.
func (app *App) TmpDir() string {
	return app.tmpDir
}

// Run listens on the configured address and serves until ctx is done or
// the process receives SIGINT, SIGTERM or SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.server.Addr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "addr", ln.Addr().String(), "tmp_dir", app.tmpDir)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	app.logger.Info(shutdownCtx, "App stopped")
	return nil
}
