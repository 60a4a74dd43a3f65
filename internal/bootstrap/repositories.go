package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/osse101/TactasRNG_Go/internal/concurrency"
	"github.com/osse101/TactasRNG_Go/internal/config"
	"github.com/osse101/TactasRNG_Go/internal/database"
	"github.com/osse101/TactasRNG_Go/internal/database/postgres"
	"github.com/osse101/TactasRNG_Go/internal/database/sqlite"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// Repositories holds the storage backends used by the application.
type Repositories struct {
	Catalog repository.Catalog
	Ledger  repository.Ledger

	// Pinger backs the readiness probe
	Pinger interface {
		Ping(ctx context.Context) error
	}

	closeFn func()
}

// Close releases the underlying connections
func (r *Repositories) Close() {
	if r.closeFn != nil {
		r.closeFn()
	}
}

// SQLPinger adapts *sql.DB to the readiness probe
type SQLPinger struct {
	DB *sql.DB
}

func (p SQLPinger) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

// InitializeRepositories connects to the configured driver, applies migrations
// and returns the catalog and ledger repositories.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, DBMaxConnIdleTime, DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
		}
		slog.Info(LogMsgStorageReady, "driver", cfg.DBDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return &Repositories{
			Catalog: postgres.NewCatalogRepository(pool),
			Ledger:  postgres.NewLedgerRepository(pool),
			Pinger:  pool,
			closeFn: pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		slog.Info(LogMsgStorageReady, "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		return &Repositories{
			Catalog: sqlite.NewCatalogRepository(db),
			Ledger:  sqlite.NewLedgerRepository(db, concurrency.NewLockManager()),
			Pinger:  SQLPinger{DB: db},
			closeFn: func() {
				if err := db.Close(); err != nil {
					slog.Error(LogMsgStorageCloseFailed, "error", err)
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.DBDriver)
}
