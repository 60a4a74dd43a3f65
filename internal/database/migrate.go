package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/TactasRNG_Go/internal/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// NewMigrationProvider returns a goose provider for the embedded postgres migrations
func NewMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(embedMigrations, MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateMigrator, err)
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateMigrator, err)
	}
	return p, nil
}

// Migrate applies all pending migrations through a database/sql handle borrowed from the pool
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// The pool owns the connections; the sql.DB is only a view over it.
	db := stdlib.OpenDBFromPool(pool)

	p, err := NewMigrationProvider(db)
	if err != nil {
		return err
	}
	return RunUp(ctx, p)
}

// RunUp applies pending migrations and logs each applied version
func RunUp(ctx context.Context, p *goose.Provider) error {
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}
	if len(results) == 0 {
		logger.FromContext(ctx).Info(LogMsgMigrationsUpToDate)
		return nil
	}
	for _, r := range results {
		logger.FromContext(ctx).Info(LogMsgMigrationApplied,
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration)
	}
	return nil
}
