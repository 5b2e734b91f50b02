// Package storage is the system of record. It owns all SQL against the SQLite
// ledger database and maps driver failures onto the core error kinds.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// Repository wraps the SQLite database. Writers serialize through immediate
// transactions (txlock=immediate); a bounded busy timeout turns lock
// starvation into a retryable conflict instead of an indefinite block.
type Repository struct {
	db      *sql.DB
	queries *Queries
}

func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := "file:" + dbPath +
		"?_txlock=immediate" +
		"&_pragma=busy_timeout(3000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Queries returns the statement set bound to the connection pool, for
// single-statement reads that need no transaction.
func (r *Repository) Queries() *Queries {
	return r.queries
}

// WithTx runs fn inside one immediate transaction. Any error rolls the whole
// unit back; nothing fn did is visible to readers until commit.
func (r *Repository) WithTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback()

	if err := fn(New(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError classifies driver errors into the core error kinds. Query methods
// call it on every failure path.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: budgets"):
		return core.ErrDuplicateBudget
	case strings.Contains(msg, "UNIQUE constraint failed: accounts"):
		return core.ErrNameTaken
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "database table is locked"),
		strings.Contains(msg, "SQLITE_BUSY"):
		return fmt.Errorf("%w: %v", core.ErrConflict, err)
	}
	return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
}
