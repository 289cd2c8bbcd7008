package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/core"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
)

// New builds the repositories that talk to the store through hand-written SQL.
func New(sqlTemplate *databaseutils.SQLTemplate, log *slog.Logger) core.Repositories {
	comments := &CommentRepository{sqlTemplate: sqlTemplate}
	return core.Repositories{
		Articles: &ArticleRepository{sqlTemplate: sqlTemplate, comments: comments, log: log},
		Comments: comments,
		Tags:     &TagRepository{sqlTemplate: sqlTemplate},
		Users:    &UserRepository{sqlTemplate: sqlTemplate},
	}
}

// findOne runs a single row query and returns the zero value when the row is
// missing.
func findOne[T any](sqlTemplate *databaseutils.SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) (T, error) {
	result, err := databaseutils.ExecuteSingleQuery(sqlTemplate, ctx, query, extractor, args...)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, nil
		}
		return zero, xerrors.New(err)
	}
	return result, nil
}

// now is truncated to what PostgreSQL keeps so returned values match stored ones.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
