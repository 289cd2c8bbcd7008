package main

import (
	"context"
	"log/slog"

	"github.com/siahsang/blog-orms/internal/config"
	"github.com/siahsang/blog-orms/internal/core"
	"github.com/siahsang/blog-orms/internal/repository"
)

// newApplication wires the configured backend into the services. The returned
// func releases the backend.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, func(), error) {
	backend, err := repository.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := &application{
		config: cfg,
		core:   core.NewCore(backend.Repos, logger),
		health: backend,
		logger: logger,
	}

	closeBackend := func() {
		if err := backend.Close(); err != nil {
			logger.Error("Errors closing database connection", slog.String("error", err.Error()))
		}
	}
	return app, closeBackend, nil
}
