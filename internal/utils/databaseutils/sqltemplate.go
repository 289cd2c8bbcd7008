package databaseutils

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// SQLTemplate runs queries written with '?' placeholders against either
// dialect, bounding each statement with Timeout. Statements join the
// transaction carried by their context, if any.
type SQLTemplate struct {
	DB      *sql.DB
	Timeout time.Duration
	Dialect Dialect
}

func NewSQLTemplate(db *sql.DB, timeout time.Duration, dialect Dialect) *SQLTemplate {
	return &SQLTemplate{
		DB:      db,
		Timeout: timeout,
		Dialect: dialect,
	}
}

// Rebind rewrites '?' placeholders to the $n form PostgreSQL expects.
func (t *SQLTemplate) Rebind(query string) string {
	if t.Dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (t *SQLTemplate) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.Timeout)
}

func (t *SQLTemplate) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	return t.executor(ctx).ExecContext(ctx, t.Rebind(query), args...)
}

// ExecAffected runs a statement and returns the number of rows it touched.
func (t *SQLTemplate) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := t.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func ExecuteQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) ([]T, error) {
	ctx, cancel := sqlTemplate.withTimeout(ctx)
	defer cancel()
	rows, err := sqlTemplate.executor(ctx).QueryContext(ctx, sqlTemplate.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		t, err := extractor(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecuteSingleQuery returns sql.ErrNoRows when the query yields nothing.
func ExecuteSingleQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) (T, error) {
	var zero T
	results, err := ExecuteQuery(sqlTemplate, ctx, query, extractor, args...)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, sql.ErrNoRows
	}
	return results[0], nil
}
