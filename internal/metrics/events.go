package metrics

import (
	"context"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all gacha events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.PullCompleted,
		event.JackpotPull,
		event.AchievementUnlocked,
		event.RewardClaimed,
		event.CatalogChanged,
	} {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.PullCompleted:
		p, err := event.DecodePayload[domain.PullCompletedPayload](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		PullsTotal.WithLabelValues(string(p.Rarity)).Inc()

	case event.JackpotPull:
		JackpotsTotal.Inc()

	case event.AchievementUnlocked:
		p, err := event.DecodePayload[domain.AchievementUnlockedPayload](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		AchievementsGranted.WithLabelValues(string(p.Achievement)).Inc()

	case event.RewardClaimed:
		p, err := event.DecodePayload[domain.RewardClaimedPayload](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		ClaimsTotal.WithLabelValues(string(p.Period), ClaimResultClaimed).Inc()
		CoinsAwarded.Add(float64(p.Amount))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) decodeFailed(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
	return nil
}

// RecordRejectedClaim counts a claim refused because the window was already used
func RecordRejectedClaim(period domain.ClaimPeriod) {
	ClaimsTotal.WithLabelValues(string(period), ClaimResultAlreadyClaimed).Inc()
}
