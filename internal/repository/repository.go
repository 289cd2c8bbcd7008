package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/config"
	"github.com/siahsang/blog-orms/internal/core"
	"github.com/siahsang/blog-orms/internal/database"
	"github.com/siahsang/blog-orms/internal/repository/gormrepo"
	"github.com/siahsang/blog-orms/internal/repository/sqlrepo"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
)

// Backend is the repository set chosen at startup together with the pool it
// runs on.
type Backend struct {
	Type  string
	Repos core.Repositories
	db    *sql.DB
}

// New opens the store, applies migrations when configured and builds the
// repositories selected by cfg.Repository.Type.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Backend, error) {
	switch cfg.Repository.Type {
	case config.RepositorySQL, config.RepositoryGorm:
	default:
		return nil, xerrors.Newf("unknown repository type: %s", cfg.Repository.Type)
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.Database.Driver, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	backend, err := NewWithDB(db, cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.InfoContext(ctx, "Repository backend ready",
		slog.String("type", backend.Type),
		slog.String("driver", cfg.Database.Driver),
	)
	return backend, nil
}

// NewWithDB builds the configured repositories on an existing pool.
func NewWithDB(db *sql.DB, cfg *config.Config, log *slog.Logger) (*Backend, error) {
	backend := &Backend{Type: cfg.Repository.Type, db: db}

	switch cfg.Repository.Type {
	case config.RepositorySQL:
		sqlTemplate := databaseutils.NewSQLTemplate(db, cfg.Database.QueryTimeout, database.Dialect(cfg.Database.Driver))
		backend.Repos = sqlrepo.New(sqlTemplate, log)
	case config.RepositoryGorm:
		gormDB, err := database.OpenGorm(db, cfg.Database.Driver, log)
		if err != nil {
			return nil, err
		}
		backend.Repos = gormrepo.New(gormDB, cfg.Database.QueryTimeout, log)
	default:
		return nil, xerrors.Newf("unknown repository type: %s", cfg.Repository.Type)
	}

	return backend, nil
}

func (b *Backend) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}
