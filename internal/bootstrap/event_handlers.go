package bootstrap

import (
	"log/slog"

	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/metrics"
	"github.com/osse101/TactasRNG_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector and, when a hub is
// present, the SSE relay for jackpots, achievements and catalog changes.
func RegisterEventHandlers(deps EventHandlerDependencies) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}
}
