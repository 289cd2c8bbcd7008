package databaseutils

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestTemplate(t *testing.T) *SQLTemplate {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tmpl := NewSQLTemplate(db, 0, SQLite)
	if _, err := tmpl.Exec(context.Background(), `CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return tmpl
}

func countNotes(t *testing.T, tmpl *SQLTemplate) int {
	t.Helper()
	n, err := ExecuteSingleQuery(tmpl, context.Background(), `SELECT COUNT(*) FROM notes`, func(rows *sql.Rows) (int, error) {
		var n int
		err := rows.Scan(&n)
		return n, err
	})
	if err != nil {
		t.Fatalf("count notes: %v", err)
	}
	return n
}

func TestDoTransactionallyCommits(t *testing.T) {
	tmpl := openTestTemplate(t)

	id, err := DoTransactionally(tmpl, context.Background(), func(txCtx context.Context) (int64, error) {
		result, err := tmpl.Exec(txCtx, `INSERT INTO notes (body) VALUES (?)`, "kept")
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected an inserted id")
	}
	if got := countNotes(t, tmpl); got != 1 {
		t.Fatalf("expected 1 note, got %d", got)
	}
}

func TestDoTransactionallyRollsBack(t *testing.T) {
	tmpl := openTestTemplate(t)
	boom := errors.New("boom")

	err := tmpl.DoTransactionally(context.Background(), func(txCtx context.Context) error {
		if _, err := tmpl.Exec(txCtx, `INSERT INTO notes (body) VALUES (?)`, "discarded"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := countNotes(t, tmpl); got != 0 {
		t.Fatalf("expected rollback, found %d notes", got)
	}
}

func TestExecuteSingleQueryNoRows(t *testing.T) {
	tmpl := openTestTemplate(t)

	_, err := ExecuteSingleQuery(tmpl, context.Background(), `SELECT body FROM notes WHERE id = ?`, func(rows *sql.Rows) (string, error) {
		var body string
		err := rows.Scan(&body)
		return body, err
	}, 42)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
