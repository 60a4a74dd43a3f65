package event

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// flakyBus fails the attempts selected by failOn
type flakyBus struct {
	mu     sync.Mutex
	calls  []time.Time
	failOn func(attempt int) bool
	delay  time.Duration
}

func (b *flakyBus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, time.Now())
	n := len(b.calls)
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.failOn != nil && b.failOn(n) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) callTimes() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.calls...)
}

func jackpot() Event {
	return NewJackpotPullEvent(domain.PullCompletedPayload{UserID: "u1", ItemName: "fork", Rarity: domain.RaritySecret})
}

func deadLetterLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	require.NoError(t, rp.Publish(context.Background(), jackpot()))
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, bus.callTimes(), 1)
	assert.Empty(t, deadLetterLines(t, path))
}

func TestResilientPublisher_RetryThenSucceed(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failOn: func(n int) bool { return n == 1 }}
	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), jackpot())
	time.Sleep(300 * time.Millisecond)

	assert.Len(t, bus.callTimes(), 2)
	assert.Empty(t, deadLetterLines(t, path))
}

func TestResilientPublisher_ExhaustionWritesDeadLetter(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failOn: func(int) bool { return true }}
	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), jackpot())
	// 50ms + 100ms + 200ms of backoff
	time.Sleep(600 * time.Millisecond)

	assert.Len(t, bus.callTimes(), 4)
	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, JackpotPull, entry.Event.Type)
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	p, err := DecodePayload[domain.PullCompletedPayload](entry.Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, jackpot().Payload, p)
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, "bus unavailable", entry.LastError)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failOn: func(int) bool { return true }, delay: 20 * time.Millisecond}

	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		deadLetter: dl,
		maxRetries: 3,
		retryDelay: time.Second,
		shutdown:   make(chan struct{}),
	}
	// no worker running, so the queue only fills

	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), jackpot())
	}

	assert.Len(t, deadLetterLines(t, path), 3)
	require.NoError(t, dl.Close())
}

func TestResilientPublisher_ShutdownDrains(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failOn: func(n int) bool { return n <= 2 }}
	rp, err := NewResilientPublisher(bus, 5, time.Second, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), jackpot())
	rp.PublishWithRetry(context.Background(), jackpot())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	// both queued events got a final attempt without waiting out the backoff
	assert.Len(t, bus.callTimes(), 4)
	assert.Empty(t, deadLetterLines(t, path))
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failOn: func(n int) bool { return n < 4 }}
	base := 100 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, base, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), jackpot())
	time.Sleep(900 * time.Millisecond)

	calls := bus.callTimes()
	require.Len(t, calls, 4)
	assert.InDelta(t, base.Milliseconds(), calls[1].Sub(calls[0]).Milliseconds(), 50)
	assert.InDelta(t, (2 * base).Milliseconds(), calls[2].Sub(calls[1]).Milliseconds(), 50)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
	assert.Equal(t, MaxRetryDelay, CalculateRetryDelay(base, 10))
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
}

func TestReadDeadLetters(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		entries, err := ReadDeadLetters(t.TempDir() + "/absent.jsonl")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("corrupt line reports position", func(t *testing.T) {
		path := t.TempDir() + "/deadletter.jsonl"
		dl, err := NewDeadLetterWriter(path)
		require.NoError(t, err)
		require.NoError(t, dl.Write(jackpot(), 2, errors.New("boom")))
		require.NoError(t, dl.Close())

		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
		require.NoError(t, err)
		_, err = f.WriteString("{not json\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		entries, err := ReadDeadLetters(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
		require.Len(t, entries, 1)
		assert.Equal(t, "boom", entries[0].LastError)
	})
}
