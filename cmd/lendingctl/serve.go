package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-lending/lending/app"
	"github.com/AntonStoeckl/library-lending/lending/httpapi"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newServeCommand(f *flags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the overdue scan periodically",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), f, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")

	return cmd
}

func serve(ctx context.Context, f *flags, addr string) error {
	rt, err := startBootstrap(ctx, f)
	if err != nil {
		return err
	}
	defer rt.close()

	if addr == "" {
		addr = rt.cfg.HTTPAddr
	}

	handlers, err := app.NewHandlers(rt.eventStore, rt.obs)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(handlers, rt.logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		rt.logger.Info("http server listening", "addr", addr, "store", rt.cfg.Store)

		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if rt.cfg.OverdueScanInterval > 0 {
		group.Go(func() error {
			return handlers.OverdueScanner.Run(groupCtx, rt.cfg.OverdueScanInterval)
		})
	}

	err = group.Wait()
	rt.logger.Info("http server stopped")

	return err
}
