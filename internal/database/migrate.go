package database

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	"github.com/pressly/goose/v3"
	"github.com/siahsang/blog-orms/internal/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration for the given driver.
func Migrate(ctx context.Context, db *sql.DB, driver string, log *slog.Logger) error {
	dialect, dir := goose.DialectPostgres, "migrations/postgres"
	if driver == config.DriverSQLite {
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	}

	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return xerrors.New(err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return xerrors.Newf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return xerrors.Newf("apply migrations: %w", err)
	}

	for _, result := range results {
		log.InfoContext(ctx, "Migration applied",
			slog.String("source", result.Source.Path),
			slog.Duration("duration", result.Duration),
		)
	}

	return nil
}
