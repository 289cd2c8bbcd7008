package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/config"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
	_ "modernc.org/sqlite"
)

// Open connects to the configured store and verifies it answers a ping.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	driverName, dsn := cfg.Database.Driver, cfg.DSN()
	if driverName == config.DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, xerrors.New(err)
	}

	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, xerrors.Newf("database ping failed: %w", err)
	}

	return db, nil
}

// SQLiteDSN turns a file path into a modernc DSN with foreign keys enforced on
// every connection.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func Dialect(driver string) databaseutils.Dialect {
	if driver == config.DriverSQLite {
		return databaseutils.SQLite
	}
	return databaseutils.Postgres
}
