// Package sqlite provides the single-file SQLite backend used by the local CLI and small deployments.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/osse101/TactasRNG_Go/internal/database"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// dsnParams enables WAL, waits on busy writers, enforces foreign keys
// and takes the write lock at BEGIN so upserts never fail mid-transaction.
const dsnParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_txlock=immediate"

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the SQLite file at path and applies embedded migrations
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := Connect(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.FromContext(ctx).Info("SQLite database opened", "path", path)
	return db, nil
}

// Connect opens and pings the SQLite file without touching the schema
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// NewMigrationProvider returns a goose provider for the embedded sqlite migrations
func NewMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(embedMigrations, database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToCreateMigrator, err)
	}
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToCreateMigrator, err)
	}
	return p, nil
}

// Migrate applies pending migrations with goose's sqlite dialect
func Migrate(ctx context.Context, db *sql.DB) error {
	p, err := NewMigrationProvider(db)
	if err != nil {
		return err
	}
	return database.RunUp(ctx, p)
}

func sqliteCode(err error) int {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	switch sqliteCode(err) {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

func isCheckViolation(err error) bool {
	return sqliteCode(err) == sqlite3lib.SQLITE_CONSTRAINT_CHECK
}

// safeRollback rolls back and logs anything other than an already-finished transaction
func safeRollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// count counts rows in a table
func count(ctx context.Context, db *sql.DB, sqlStr string, args []interface{}) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}
