package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

// MockRoundTripper implements http.RoundTripper for intercepting Discord requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// discordCall is one captured request to the Discord REST API
type discordCall struct {
	Method string
	Path   string
	Body   []byte
}

// TestContext wires a fake gacha API (Mux) and a Discord session whose REST calls are captured
type TestContext struct {
	Server    *httptest.Server
	Mux       *http.ServeMux
	APIClient *APIClient
	Session   *discordgo.Session

	mu    sync.Mutex
	calls []discordCall
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewAPIClient(server.URL, "test-api-key")
	client.retryDelay = time.Millisecond

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}

	ctx := &TestContext{
		Server:    server,
		Mux:       mux,
		APIClient: client,
		Session:   session,
	}
	session.Client = &http.Client{Transport: &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			ctx.mu.Lock()
			ctx.calls = append(ctx.calls, discordCall{Method: req.Method, Path: req.URL.Path, Body: body})
			ctx.mu.Unlock()
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("{}")),
				Header:     make(http.Header),
			}, nil
		},
	}}

	return ctx
}

// Calls returns the captured Discord requests
func (c *TestContext) Calls() []discordCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]discordCall(nil), c.calls...)
}

// LastEdit decodes the most recent interaction response edit
func (c *TestContext) LastEdit(t *testing.T) discordgo.WebhookEdit {
	t.Helper()
	calls := c.Calls()
	for n := len(calls) - 1; n >= 0; n-- {
		if calls[n].Method == http.MethodPatch && strings.Contains(calls[n].Path, "/messages/@original") {
			var edit discordgo.WebhookEdit
			if err := json.Unmarshal(calls[n].Body, &edit); err != nil {
				t.Fatalf("decode edit: %v", err)
			}
			return edit
		}
	}
	t.Fatal("no interaction response edit captured")
	return discordgo.WebhookEdit{}
}

// LastCallback decodes the most recent interaction callback
func (c *TestContext) LastCallback(t *testing.T) discordgo.InteractionResponse {
	t.Helper()
	calls := c.Calls()
	for n := len(calls) - 1; n >= 0; n-- {
		if calls[n].Method == http.MethodPost && strings.HasSuffix(calls[n].Path, "/callback") {
			var resp discordgo.InteractionResponse
			if err := json.Unmarshal(calls[n].Body, &resp); err != nil {
				t.Fatalf("decode callback: %v", err)
			}
			return resp
		}
	}
	t.Fatal("no interaction callback captured")
	return discordgo.InteractionResponse{}
}

// WriteJSON writes a JSON success body
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// newInteraction builds a guild slash-command interaction from user id "42"
func newInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-1",
			AppID: "app-1",
			Token: "token-1",
			Type:  discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "42", Username: "tester", GlobalName: "Tester"},
			},
		},
	}
}

func strOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func intOption(name string, value int64) *discordgo.ApplicationCommandInteractionDataOption {
	// Option values arrive as JSON numbers
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func userOption(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionUser,
		Value: id,
	}
}
