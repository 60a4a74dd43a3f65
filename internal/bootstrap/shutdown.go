package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/scheduler"
	"github.com/osse101/TactasRNG_Go/internal/server"
	"github.com/osse101/TactasRNG_Go/internal/sse"
	"github.com/osse101/TactasRNG_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Hub                *sse.Hub
	Repositories       *Repositories
}

// GracefulShutdown stops components in dependency order:
//  1. HTTP server (stop accepting new requests)
//  2. scheduler, then the worker pool, which drains queued publish jobs
//  3. resilient publisher, flushing pending retries
//  4. SSE hub and storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		slog.Info(LogMsgShuttingDownWorkers)
		c.WorkerPool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
