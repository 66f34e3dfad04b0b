// Command lendingctl runs the library lending service and its maintenance tasks.
//
// Configuration comes from the environment, optionally loaded from a .env file:
//
//	lendingctl serve                  HTTP API plus the periodic overdue scan
//	lendingctl serve --store=memory   the same without a database, state is lost on exit
//	lendingctl scan-overdue           one overdue scan, prints the number of overdue records
//	lendingctl migrate                creates the events and snapshots tables (postgres only)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending/lending/app"
	"github.com/AntonStoeckl/library-lending/lending/shell/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

// flags shared by all subcommands, they override the environment.
type flags struct {
	store string
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "lendingctl",
		Short:         "Library lending service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&f.store, "store", "", "memory or postgres, overrides STORE")

	root.AddCommand(newServeCommand(f), newScanOverdueCommand(f), newMigrateCommand(f))

	return root
}

// bootstrap is what every subcommand starts from.
type bootstrap struct {
	cfg        config.Config
	logger     *slog.Logger
	obs        app.Observability
	eventStore app.EventStore
	close      func()
}

func startBootstrap(ctx context.Context, f *flags) (*bootstrap, error) {
	cfg, err := config.LoadWith(map[string]string{config.EnvStore: f.store})
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(cfg, os.Stdout)

	var shutdownProviders func() error
	if cfg.OTelEnabled {
		providers, providersErr := config.NewObservabilityProviders(ctx, cfg)
		if providersErr != nil {
			return nil, providersErr
		}
		shutdownProviders = providers.Shutdown
	}

	obs := app.NewObservability(cfg, logger)

	eventStore, closeStore, err := app.OpenEventStore(ctx, cfg, obs)
	if err != nil {
		if shutdownProviders != nil {
			_ = shutdownProviders()
		}
		return nil, err
	}

	return &bootstrap{
		cfg:        cfg,
		logger:     logger,
		obs:        obs,
		eventStore: eventStore,
		close: func() {
			closeStore()

			if shutdownProviders != nil {
				if shutdownErr := shutdownProviders(); shutdownErr != nil {
					logger.Error("shutting down observability providers failed", "error", shutdownErr.Error())
				}
			}
		},
	}, nil
}
