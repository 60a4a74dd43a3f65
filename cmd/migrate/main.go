package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/TactasRNG_Go/internal/config"
	"github.com/osse101/TactasRNG_Go/internal/database"
	"github.com/osse101/TactasRNG_Go/internal/database/sqlite"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

const usage = "Usage: migrate <up|down|status|reset>"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg, err := config.LoadForTooling()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration failed: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	ctx := context.Background()
	provider, closeDB, err := openProvider(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer closeDB()

	if err := run(ctx, provider, os.Args[1]); err != nil {
		slog.Error("Migration command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// openProvider connects without migrating and returns the driver's goose provider
func openProvider(ctx context.Context, cfg *config.Config) (*goose.Provider, func(), error) {
	var (
		db  *sql.DB
		err error
		p   *goose.Provider
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, perr := database.NewPool(ctx, cfg.GetDBConnString(), 2, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
		if perr != nil {
			return nil, nil, perr
		}
		db = stdlib.OpenDBFromPool(pool)
		p, err = database.NewMigrationProvider(db)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return p, func() { _ = db.Close(); pool.Close() }, nil

	case config.DriverSQLite:
		db, err = sqlite.Connect(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		p, err = sqlite.NewMigrationProvider(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return p, func() { _ = db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
}

func run(ctx context.Context, p *goose.Provider, command string) error {
	switch command {
	case "up":
		return database.RunUp(ctx, p)

	case "down":
		res, err := p.Down(ctx)
		if err != nil {
			return err
		}
		slog.Info("Rolled back migration", "version", res.Source.Version, "path", res.Source.Path)
		return nil

	case "reset":
		results, err := p.DownTo(ctx, 0)
		if err != nil {
			return err
		}
		slog.Info("Rolled back all migrations", "count", len(results))
		return nil

	case "status":
		statuses, err := p.Status(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tFILE")
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
		}
		return w.Flush()
	}
	return fmt.Errorf("unknown command %q\n%s", command, usage)
}
