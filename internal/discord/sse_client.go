package discord

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/sse"
)

const sseEventsPath = "/api/v1/events"

var errStreamClosed = errors.New("event stream closed by server")

// SSEEvent is one decoded frame from the API event stream
type SSEEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SSEEventHandler handles a specific event type
type SSEEventHandler func(event SSEEvent) error

// SSEClient follows the API event stream and reconnects with backoff
// until Stop is called or its context ends.
type SSEClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client

	mu       sync.RWMutex
	handlers map[string][]SSEEventHandler

	connected atomic.Bool
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewSSEClient subscribes to eventTypes; an empty list receives everything.
func NewSSEClient(baseURL, apiKey string, eventTypes []string) *SSEClient {
	endpoint := strings.TrimRight(baseURL, "/") + sseEventsPath
	if len(eventTypes) > 0 {
		q := url.Values{}
		q.Set(sse.QueryParamTypes, strings.Join(eventTypes, ","))
		endpoint += "?" + q.Encode()
	}
	return &SSEClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		// streams are long-lived, so no client timeout
		httpClient: &http.Client{},
		handlers:   make(map[string][]SSEEventHandler),
		shutdown:   make(chan struct{}),
	}
}

// OnEvent registers a handler for a specific event type
func (c *SSEClient) OnEvent(eventType string, handler SSEEventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

func (c *SSEClient) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.run(ctx)
}

// Stop is idempotent and waits for the reconnect loop to exit
func (c *SSEClient) Stop() {
	c.stopOnce.Do(func() { close(c.shutdown) })
	c.wg.Wait()
}

func (c *SSEClient) IsConnected() bool {
	return c.connected.Load()
}

func (c *SSEClient) run(ctx context.Context) {
	defer c.wg.Done()
	defer slog.Info(sseLogMsgClientStopped)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	backoff := sseInitialBackoff
	failures := 0
	for ctx.Err() == nil {
		err := c.stream(ctx)
		c.connected.Store(false)
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, errStreamClosed) {
			// the server ended a healthy stream; reconnect from the shortest delay
			backoff, failures = sseInitialBackoff, 0
		} else {
			failures++
		}
		slog.Warn(sseLogMsgConnectionFailed, "error", err, "backoff", backoff, "consecutive_failures", failures)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	next := time.Duration(float64(d) * sseBackoffMultiplier)
	if next > sseMaxBackoff {
		return sseMaxBackoff
	}
	return next
}

func (c *SSEClient) stream(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.connected.Store(true)
	slog.Info(sseLogMsgClientConnected, "url", c.endpoint)

	if err := readFrames(resp.Body, c.dispatch); err != nil {
		return err
	}
	return errStreamClosed
}

// sseFrame accumulates the fields of one event until its blank terminator line
type sseFrame struct {
	id, event string
	data      []string
}

// readFrames calls emit for each complete frame. Comment lines are skipped
// and repeated data lines are joined with newlines.
func readFrames(r io.Reader, emit func(id, eventType, data string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, sseBufferSize), sseBufferSize)

	var f sseFrame
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if len(f.data) > 0 {
				emit(f.id, f.event, strings.Join(f.data, "\n"))
			}
			f = sseFrame{}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			f.id = value
		case "event":
			f.event = value
		case "data":
			f.data = append(f.data, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}
	return nil
}

func (c *SSEClient) dispatch(id, eventType, data string) {
	if eventType == "" || eventType == sse.EventTypeKeepalive || eventType == sse.EventTypeConnected {
		return
	}

	var event SSEEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "data", data)
		return
	}
	event.Type = eventType
	if id != "" {
		event.ID = id
	}

	c.mu.RLock()
	handlers := c.handlers[event.Type]
	c.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			slog.Error(sseLogMsgHandlerError, "event_type", event.Type, "error", err)
		}
	}
}
