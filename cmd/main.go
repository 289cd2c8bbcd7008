package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/config"
	"github.com/siahsang/blog-orms/internal/core"
	"github.com/siahsang/blog-orms/internal/database"
	"github.com/siahsang/blog-orms/internal/telemetry"
	"github.com/urfave/cli/v3"
)

type healthChecker interface {
	Ping(ctx context.Context) error
}

type application struct {
	config *config.Config
	core   *core.Core
	health healthChecker
	logger *slog.Logger
}

func main() {
	root := &cli.Command{
		Name:  "blog",
		Usage: "Blog API with swappable repository backends",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				Sources: cli.EnvVars("BLOG_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveAction,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations and exit",
				Action: migrateAction,
			},
		},
		Action: serveAction,
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, xerrors.Sprint(err))
		os.Exit(1)
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, nil, xerrors.Newf("load config: %w", err)
	}
	return cfg, telemetry.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format), nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Info("Starting application...", slog.String("repository", cfg.Repository.Type))

	if cfg.Telemetry.Enabled {
		provider, err := telemetry.NewProvider(ctx, telemetry.Config{
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: cfg.Telemetry.ServiceVersion,
			Environment:    cfg.Telemetry.Environment,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				logger.Error("Errors shutting down telemetry", slog.String("error", err.Error()))
			}
		}()
	}

	app, closeBackend, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	return app.serve(ctx)
}

func migrateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.Database.Driver, logger); err != nil {
		return err
	}

	logger.Info("Database schema is up to date", slog.String("driver", cfg.Database.Driver))
	return nil
}
