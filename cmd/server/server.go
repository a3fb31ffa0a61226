package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Run serves HTTP and, when Kafka is enabled, consumes signals until ctx is
// cancelled, then shuts both down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	server := &http.Server{
		Addr:         net.JoinHostPort("", strconv.Itoa(app.config.Server.Port)),
		Handler:      app.setupRouter(),
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
	}
	return app.serve(ctx, server)
}

func (app *application) serve(ctx context.Context, server *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if app.consumer != nil {
		g.Go(func() error {
			return app.consumer.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		app.logger.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}
	app.logger.Info("server shutdown completed")
	return nil
}
