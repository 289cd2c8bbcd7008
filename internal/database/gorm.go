package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm puts gorm on top of an already opened pool so both backends share
// connections and migrations.
func OpenGorm(db *sql.DB, driver string, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverSQLite:
		dialector = sqlite.Dialector{DriverName: "sqlite", Conn: db}
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{Conn: db})
	default:
		return nil, xerrors.Newf("unknown database driver: %s", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(gormWriter{log: log}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, xerrors.New(err)
	}
	return gormDB, nil
}

// gormWriter routes gorm's printf style output into slog.
type gormWriter struct {
	log *slog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
