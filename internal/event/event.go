package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	ID        string      `json:"id"`
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Gacha event types
const (
	PullCompleted       Type = domain.EventPullCompleted
	JackpotPull         Type = domain.EventJackpotPull
	AchievementUnlocked Type = domain.EventAchievementUnlocked
	RewardClaimed       Type = domain.EventRewardClaimed
	CatalogChanged      Type = domain.EventCatalogChanged
)

func newEvent(t Type, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Version:   EventSchemaVersion,
		Type:      t,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}

// NewPullCompletedEvent announces any committed pull
func NewPullCompletedEvent(p domain.PullCompletedPayload) Event {
	return newEvent(PullCompleted, p)
}

// NewJackpotPullEvent announces a legendary-or-higher pull
func NewJackpotPullEvent(p domain.PullCompletedPayload) Event {
	return newEvent(JackpotPull, p)
}

// NewAchievementUnlockedEvent announces a freshly created grant
func NewAchievementUnlockedEvent(p domain.AchievementUnlockedPayload) Event {
	return newEvent(AchievementUnlocked, p)
}

// NewRewardClaimedEvent records a successful daily or weekly claim
func NewRewardClaimedEvent(p domain.RewardClaimedPayload) Event {
	return newEvent(RewardClaimed, p)
}

// NewCatalogChangedEvent records an admin catalog write
func NewCatalogChangedEvent(action, itemName string) Event {
	return newEvent(CatalogChanged, domain.CatalogChangedPayload{Action: action, ItemName: itemName})
}

// DecodePayload returns the payload as T. MemoryBus hands over the original
// struct; payloads read back from the dead-letter file arrive as maps and are
// converted through JSON.
func DecodePayload[T any](payload interface{}) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("failed to encode %T payload: %w", payload, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode payload as %T: %w", out, err)
	}
	return out, nil
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
