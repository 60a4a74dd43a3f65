package sse

import (
	"context"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.JackpotPull, s.handleJackpot)
	s.bus.Subscribe(event.AchievementUnlocked, s.handleAchievement)
	s.bus.Subscribe(event.CatalogChanged, s.handleCatalogChanged)

	logger.Info(LogMsgSubscribed, "types", []string{
		EventTypeJackpotPull,
		EventTypeAchievementUnlocked,
		EventTypeCatalogChanged,
	})
}

func (s *Subscriber) handleJackpot(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.PullCompletedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeJackpotPull, JackpotPayload{
		UserID:   p.UserID,
		Username: p.Username,
		ItemName: p.ItemName,
		Rarity:   p.Rarity,
		Image:    p.Image,
	})
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", EventTypeJackpotPull, "user_id", p.UserID, "item", p.ItemName)
	return nil
}

func (s *Subscriber) handleAchievement(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.AchievementUnlockedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeAchievementUnlocked, AchievementPayload{
		UserID:        p.UserID,
		Username:      p.Username,
		AchievementID: string(p.Achievement),
		Name:          p.Name,
		Description:   p.Description,
	})
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", EventTypeAchievementUnlocked, "user_id", p.UserID, "achievement", p.Achievement)
	return nil
}

func (s *Subscriber) handleCatalogChanged(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.CatalogChangedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeCatalogChanged, CatalogPayload(p))
	return nil
}
