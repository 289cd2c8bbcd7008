package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdobak/go-xerrors"
)

// serve runs until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to the configured shutdown timeout.
func (app *application) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:         app.config.Addr(),
		Handler:      app.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", slog.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return xerrors.New(err)
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return xerrors.New(err)
	}

	app.logger.Info("Server stopped")
	return nil
}
