package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"

	"github.com/oaiiae/address-book/cli/api"
	"github.com/oaiiae/address-book/cli/logger"
)

const title = "Address Book"

// Set with -ldflags at build time.
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	api.ServerOptions
	api.RouterOptions
	logger.Options
}

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn(".env file found, but could not load it", "err", err)
	}

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options)
		srv := api.NewServer(&options.ServerOptions,
			api.NewRouter(&options.RouterOptions, title, version, revision, created, log),
			log,
		)
		hooks.OnStart(func() {
			log.Info("listening", "addr", srv.Addr, "version", version)
			err := srv.ListenAndServe()
			if err != http.ErrServerClosed {
				log.Error("failed to listen and serve", "err", err)
			} else {
				log.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			err := srv.Shutdown(ctx)
			if err != nil {
				log.Warn("could not shutdown the server", "err", err)
			}
		})
	})
	cli.Root().Use = "address-book"
	cli.Root().Version = version
	cli.Run()
}
