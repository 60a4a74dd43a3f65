package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/sse"
)

func TestSSEClient_DispatchesEvents(t *testing.T) {
	jackpot, err := sse.FormatSSEMessage(sse.Event{
		ID:   "evt-1",
		Type: sse.EventTypeJackpotPull,
		Payload: sse.JackpotPayload{
			UserID: "42", Username: "Tester", ItemName: "outlet", Rarity: domain.RarityMythic,
		},
	})
	require.NoError(t, err)
	keepalive, err := sse.FormatSSEMessage(sse.Event{ID: "k", Type: sse.EventTypeKeepalive})
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, sse.EventTypeJackpotPull, r.URL.Query().Get(sse.QueryParamTypes))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write(keepalive)
		_, _ = w.Write(jackpot)
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	client := NewSSEClient(server.URL, "api-key", []string{sse.EventTypeJackpotPull})
	got := make(chan SSEEvent, 1)
	var keepalives atomic.Int32
	client.OnEvent(sse.EventTypeJackpotPull, func(e SSEEvent) error {
		got <- e
		return nil
	})
	client.OnEvent(sse.EventTypeKeepalive, func(SSEEvent) error {
		keepalives.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	client.Start(ctx)
	t.Cleanup(func() {
		cancel()
		client.Stop()
	})

	select {
	case e := <-got:
		assert.Equal(t, "evt-1", e.ID)
		var p sse.JackpotPayload
		require.NoError(t, json.Unmarshal(e.Payload, &p))
		assert.Equal(t, "outlet", p.ItemName)
	case <-time.After(2 * time.Second):
		t.Fatal("event not dispatched")
	}
	assert.True(t, client.IsConnected())
	assert.Zero(t, keepalives.Load())
}

func TestSSENotifier_PostsToChannel(t *testing.T) {
	ctx := SetupTestContext(t)
	notifier := NewSSENotifier(ctx.Session, "chan-1")

	payload, err := json.Marshal(sse.AchievementPayload{
		UserID: "123456789012345678", AchievementID: "rare_pull", Name: "Rare Find", Description: "Pull a rare item",
	})
	require.NoError(t, err)
	require.NoError(t, notifier.handleAchievement(SSEEvent{Type: sse.EventTypeAchievementUnlocked, Payload: payload}))

	calls := ctx.Calls()
	require.NotEmpty(t, calls)
	last := calls[len(calls)-1]
	assert.Equal(t, http.MethodPost, last.Method)
	assert.True(t, strings.HasSuffix(last.Path, "/channels/chan-1/messages"))
	assert.Contains(t, string(last.Body), "Rare Find")
	assert.Contains(t, string(last.Body), "123456789012345678")
}

func TestSSENotifier_BadPayload(t *testing.T) {
	ctx := SetupTestContext(t)
	notifier := NewSSENotifier(ctx.Session, "chan-1")
	assert.Error(t, notifier.handleJackpot(SSEEvent{Payload: json.RawMessage(`"nope"`)}))
	assert.Empty(t, ctx.Calls())
}

func TestReadFrames(t *testing.T) {
	stream := ": comment\n" +
		"id: 1\nevent: jackpot_pull\ndata: {\"a\":1}\n\n" +
		"event: multi\ndata: line one\ndata: line two\n\n" +
		"id: 3\n\n" +
		"event:tight\ndata:{}\n\n"

	type frame struct{ id, eventType, data string }
	var got []frame
	err := readFrames(strings.NewReader(stream), func(id, eventType, data string) {
		got = append(got, frame{id, eventType, data})
	})
	require.NoError(t, err)

	assert.Equal(t, []frame{
		{"1", "jackpot_pull", `{"a":1}`},
		{"", "multi", "line one\nline two"},
		{"", "tight", "{}"},
	}, got)
}

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{sseInitialBackoff, 2 * sseInitialBackoff},
		{20 * time.Second, sseMaxBackoff},
		{sseMaxBackoff, sseMaxBackoff},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextBackoff(tt.in), "from %v", tt.in)
	}
}

func TestSSEClient_StopWithoutServer(t *testing.T) {
	client := NewSSEClient("http://127.0.0.1:1", "", nil)
	client.Start(context.Background())

	done := make(chan struct{})
	go func() {
		client.Stop()
		client.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.False(t, client.IsConnected())
}
