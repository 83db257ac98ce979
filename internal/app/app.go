// Package app wires configuration, logging, the user registry and the
// interactive front end into a runnable program.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userholder/internal/cli"
	"github.com/dmitrijs2005/userholder/internal/config"
	"github.com/dmitrijs2005/userholder/internal/logging"
	"github.com/dmitrijs2005/userholder/internal/users"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	registry *users.Registry
	cli      *cli.App
}

// NewApp builds the registry from c. Logs go to logOut; the REPL talks over
// in and out.
func NewApp(c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	hasher, err := c.Hasher()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	registry := users.NewRegistry(logger, users.NewLogCodeSender(logger), users.WithHasher(hasher))

	return &App{
		config:   c,
		logger:   logger,
		registry: registry,
		cli:      cli.NewApp(registry, in, out),
	}, nil
}

// Registry exposes the registry the app serves.
func (app *App) Registry() *users.Registry {
	return app.registry
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run loads the configured import file, if any, and then serves the REPL
// until it exits or the process is signalled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "hash_algorithm", app.config.HashAlgorithm)
	app.initSignalHandler(cancelFunc)

	if app.config.ImportFile != "" {
		if err := app.cli.ImportFile(ctx, app.config.ImportFile); err != nil {
			app.logger.Error(ctx, "import failed", "file", app.config.ImportFile, "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.cli.Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	app.logger.Info(ctx, "Stopping app...", "users", app.registry.Len())
}
