// @title TactasRNG API
// @version 1.0
// @description Gacha pulls, inventories, achievements and periodic rewards.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/bootstrap"
	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/config"
	"github.com/osse101/TactasRNG_Go/internal/draw"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/metrics"
	"github.com/osse101/TactasRNG_Go/internal/reward"
	"github.com/osse101/TactasRNG_Go/internal/scheduler"
	"github.com/osse101/TactasRNG_Go/internal/server"
	"github.com/osse101/TactasRNG_Go/internal/sse"
	"github.com/osse101/TactasRNG_Go/internal/worker"

	_ "github.com/osse101/TactasRNG_Go/docs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	initBootstrapLogger()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx := context.Background()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Close()
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		Hub:      hub,
	})

	catalogSvc := catalog.NewService(repos.Catalog, resilientPublisher)
	if err := bootstrap.SeedCatalog(ctx, cfg, catalogSvc); err != nil {
		hub.Stop()
		repos.Close()
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		hub.Stop()
		repos.Close()
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	gachaSvc := gacha.NewService(
		repos.Ledger,
		catalogSvc,
		draw.New(nil),
		reward.NewSchedule(reward.RealClock{}, loc),
		gacha.NewPoolPublisher(pool, resilientPublisher),
	)

	sched := scheduler.New(pool)
	sched.Schedule("catalog_items", cfg.StatsRefreshInterval, worker.GaugeRefreshJob{
		Name:  metrics.MetricNameCatalogItems,
		Count: catalogSvc.Count,
		Gauge: metrics.CatalogItems,
	})
	sched.Schedule("users", cfg.StatsRefreshInterval, worker.GaugeRefreshJob{
		Name:  metrics.MetricNameUsers,
		Count: repos.Ledger.CountUsers,
		Gauge: metrics.Users,
	})

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, repos.Pinger, gachaSvc, catalogSvc, hub)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: resilientPublisher,
		Hub:                hub,
		Repositories:       repos,
	})
	return runErr
}
