package gacha

import (
	"context"

	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/worker"
)

// Publisher delivers committed-state notifications.
// Publish must not block the caller and reports whether the events were accepted.
type Publisher interface {
	Publish(ctx context.Context, events ...event.Event) bool
}

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, ...event.Event) bool { return true }

// PoolPublisher hands events to the worker pool for delivery on the bus
type PoolPublisher struct {
	Pool *worker.Pool
	Bus  event.Bus
}

// NewPoolPublisher creates a PoolPublisher
func NewPoolPublisher(pool *worker.Pool, bus event.Bus) *PoolPublisher {
	return &PoolPublisher{Pool: pool, Bus: bus}
}

func (p *PoolPublisher) Publish(_ context.Context, events ...event.Event) bool {
	return p.Pool.TryEnqueue(worker.PublishJob{Bus: p.Bus, Events: events})
}
