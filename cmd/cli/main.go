package main

import (
	"context"
	"fmt"
	"os"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/concurrency"
	"github.com/osse101/TactasRNG_Go/internal/config"
	"github.com/osse101/TactasRNG_Go/internal/database/sqlite"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/logger"
	"github.com/osse101/TactasRNG_Go/internal/reward"
)

func main() {
	cfg, err := config.LoadForTooling()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration failed: %v\n", err)
		os.Exit(1)
	}
	// The REPL owns stdout; only warnings go to stderr.
	logger.InitLoggerWithWriter(logger.NewConfig("warn", cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false), os.Stderr)

	if err := run(context.Background(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	catalogSvc := catalog.NewService(sqlite.NewCatalogRepository(db), nil)
	if cfg.SeedDefaultItems {
		if _, err := catalogSvc.SeedDefaults(ctx, domain.DefaultItems); err != nil {
			return err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	ledger := sqlite.NewLedgerRepository(db, concurrency.NewLockManager())
	svc := gacha.NewService(ledger, catalogSvc, nil, reward.NewSchedule(reward.RealClock{}, loc), nil)

	return newREPL(svc, os.Stdout).Run(ctx, os.Stdin)
}
