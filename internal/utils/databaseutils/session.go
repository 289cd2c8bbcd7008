package databaseutils

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct {
}

// SQLExecutor is the part of *sql.DB and *sql.Tx the template needs.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// executor returns the transaction stored in ctx, or the pool.
func (t *SQLTemplate) executor(ctx context.Context) SQLExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return t.DB
}

// DoTransactionally runs fn in a transaction that is committed when fn returns
// nil and rolled back otherwise. A context that already carries a transaction
// is reused as is.
func (t *SQLTemplate) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("session: failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rollbackErr)
			}
		} else if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("session: failed to commit transaction: %w", commitErr)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

func DoTransactionally[T any](t *SQLTemplate, ctx context.Context, fn func(txCtx context.Context) (T, error)) (T, error) {
	var zero T
	var result T
	err := t.DoTransactionally(ctx, func(txCtx context.Context) error {
		r, err := fn(txCtx)
		result = r
		return err
	})
	if err != nil {
		return zero, err
	}
	return result, nil
}
