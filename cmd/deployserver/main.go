package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bluegilltech/pca-wizard/api/deployhandler"
	"github.com/bluegilltech/pca-wizard/cmd/flags"
	"github.com/bluegilltech/pca-wizard/httpserver"
	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/bluegilltech/pca-wizard/metrics"
	"github.com/bluegilltech/pca-wizard/storage"
	"github.com/urfave/cli/v2"
)

var serverFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "listen-addr",
		Value:   "127.0.0.1:8080",
		EnvVars: []string{"PCA_LISTEN_ADDR"},
		Usage:   "address to listen on for API",
	},
	&cli.StringSliceFlag{
		Name:    "storage-uri",
		Value:   cli.NewStringSlice("file://./data"),
		EnvVars: []string{"PCA_STORAGE_URI"},
		Usage:   "storage backend URI (file://, s3://, vault://), repeat to store to several backends",
	},
	flags.LogServiceFlagFn("deployserver"),
}

func main() {
	app := &cli.App{
		Name:  "deployserver",
		Usage: "Serve the Premium App deployment backend notified after installation",
		Flags: append(serverFlags, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			var locations []interfaces.StorageBackendLocation
			for _, uri := range cCtx.StringSlice("storage-uri") {
				location, err := interfaces.NewStorageBackendLocation(uri)
				if err != nil {
					logger.Error("Invalid storage URI", "err", err)
					return err
				}
				locations = append(locations, location)
			}

			store, err := storage.NewStorageBackendFactory(logger).CreateMultiBackend(locations)
			if err != nil {
				logger.Error("Failed to create storage backends", "err", err)
				return err
			}
			logger.Info("Storage configured", "location", store.LocationURI())

			cfg := flags.ConfigureServer(cCtx, logger, cCtx.String("listen-addr"))
			cfg.Metrics, err = metrics.New(metrics.Namespace, cfg.MetricsAddr)
			if err != nil {
				logger.Error("Failed to create metrics server", "err", err)
				return err
			}
			cfg.ReadinessCheck = func(ctx context.Context) bool {
				ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				return store.Available(ctx)
			}

			handler := deployhandler.NewHandler(store, cfg.Metrics.ProvisionRequests, logger)
			server, err := httpserver.New(cfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			// Wait for termination signal
			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
