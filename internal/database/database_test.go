package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/siahsang/blog-orms/internal/config"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
)

func openSQLite(t *testing.T) (*config.Config, *slog.Logger) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "blog.db")
	cfg.Database.MaxIdleConns = 2
	return cfg, slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMigrateIsIdempotent(t *testing.T) {
	cfg, log := openSQLite(t)
	ctx := context.Background()

	db, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, db, cfg.Database.Driver, log); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	for _, table := range []string{"users", "articles", "comments", "tags", "article_tags"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	cfg, log := openSQLite(t)
	ctx := context.Background()

	db, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db, cfg.Database.Driver, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err = db.ExecContext(ctx, `INSERT INTO article_tags (article_id, tag_id) VALUES ('missing', 'missing')`)
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestOpenGorm(t *testing.T) {
	cfg, log := openSQLite(t)
	ctx := context.Background()

	db, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	gormDB, err := OpenGorm(db, cfg.Database.Driver, log)
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	var one int
	if err := gormDB.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil || one != 1 {
		t.Fatalf("gorm query failed: %v (got %d)", err, one)
	}

	if _, err := OpenGorm(db, "oracle", log); err == nil {
		t.Fatal("expected unknown driver error")
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := SQLiteDSN("blog.db"); got != "blog.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := SQLiteDSN("file:blog.db?mode=rwc"); got != "file:blog.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestDialect(t *testing.T) {
	if Dialect(config.DriverSQLite) != databaseutils.SQLite {
		t.Fatal("sqlite driver must map to the sqlite dialect")
	}
	if Dialect(config.DriverPostgres) != databaseutils.Postgres {
		t.Fatal("postgres driver must map to the postgres dialect")
	}
}
