package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got Event

	bus.Subscribe(JackpotPull, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	evt := NewJackpotPullEvent(domain.PullCompletedPayload{UserID: "u1", ItemName: "fork", Rarity: domain.RaritySecret})
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, JackpotPull, got.Type)
	assert.Equal(t, EventSchemaVersion, got.Version)
	assert.NotEmpty(t, got.ID)

	payload, err := DecodePayload[domain.PullCompletedPayload](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, "fork", payload.ItemName)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}
	bus.Subscribe(PullCompleted, handler)
	bus.Subscribe(PullCompleted, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Type: PullCompleted}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: CatalogChanged}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(RewardClaimed, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})

	assert.Error(t, bus.Publish(context.Background(), Event{Type: RewardClaimed}))
}

func TestDecodePayload_FromMap(t *testing.T) {
	// payloads arriving over SSE are generic maps
	raw := map[string]interface{}{"user_id": "u1", "achievement": "first_pull", "name": "First Pull!"}
	p, err := DecodePayload[domain.AchievementUnlockedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, domain.AchievementID("first_pull"), p.Achievement)
}
