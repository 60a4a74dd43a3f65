package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/database/memory"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
)

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()
	cat := catalog.NewService(store, nil)
	_, err := cat.SeedDefaults(context.Background(), domain.DefaultItems)
	require.NoError(t, err)
	svc := gacha.NewService(store, cat, nil, nil, nil)
	return NewRouter(testAPIKey, nil, pingOK{}, svc, cat, nil)
}

func call(t *testing.T, h http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		authed bool
		status int
	}{
		{"healthz is public", http.MethodGet, "/healthz", "", false, http.StatusOK},
		{"readyz is public", http.MethodGet, "/readyz", "", false, http.StatusOK},
		{"version is public", http.MethodGet, "/version", "", false, http.StatusOK},
		{"api requires key", http.MethodGet, "/api/v1/items", "", false, http.StatusUnauthorized},
		{"list items", http.MethodGet, "/api/v1/items", "", true, http.StatusOK},
		{"get item", http.MethodGet, "/api/v1/items/Fork", "", true, http.StatusOK},
		{"pull", http.MethodPost, "/api/v1/pull", `{"user_id":"1","username":"localuser"}`, true, http.StatusOK},
		{"daily", http.MethodPost, "/api/v1/rewards/daily", `{"user_id":"1"}`, true, http.StatusOK},
		{"daily again", http.MethodPost, "/api/v1/rewards/daily", `{"user_id":"1"}`, true, http.StatusConflict},
		{"admin add item", http.MethodPost, "/api/v1/admin/items", `{"name":"spoon","rarity":"rare"}`, true, http.StatusCreated},
		{"admin user inventory", http.MethodGet, "/api/v1/admin/users/1/inventory", "", true, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", true, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, h, tt.method, tt.path, tt.body, tt.authed)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	h := newTestRouter(t)
	body := `{"user_id":"1","username":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
	rec := call(t, h, http.MethodPost, "/api/v1/pull", body, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
