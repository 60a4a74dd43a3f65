package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/database/memory"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/draw"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/reward"
)

type testEnv struct {
	router http.Handler
	store  *memory.Store
	clock  *reward.ManualClock
}

// newTestEnv wires the handlers over the in-memory store the same way the server routes them
func newTestEnv(t *testing.T, items ...domain.Item) *testEnv {
	t.Helper()
	InitValidator()

	store := memory.NewStore()
	cat := catalog.NewService(store, nil)
	for _, it := range items {
		_, err := cat.AddItem(context.Background(), it.Name, string(it.Rarity))
		require.NoError(t, err)
	}
	clock := reward.NewManualClock(time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC))
	svc := gacha.NewService(store, cat, draw.NewSeeded(7), reward.NewSchedule(clock, time.UTC), nil)

	gh := NewGachaHandler(svc)
	ih := NewItemHandler(cat)
	ah := NewAdminHandler(svc)

	r := chi.NewRouter()
	r.Post("/pull", gh.HandlePull)
	r.Get("/inventory", gh.HandleInventory)
	r.Get("/achievements", gh.HandleAchievements)
	r.Post("/rewards/daily", gh.HandleClaimDaily)
	r.Post("/rewards/weekly", gh.HandleClaimWeekly)
	r.Get("/rewards/streak", gh.HandleStreak)
	r.Get("/stats", gh.HandleStats)
	r.Get("/leaderboard", gh.HandleLeaderboard)
	r.Get("/items", ih.HandleListItems)
	r.Get("/items/search", ih.HandleSearchItems)
	r.Get("/items/{name}", ih.HandleGetItem)
	r.Post("/admin/items", ah.HandleAddItem)
	r.Delete("/admin/items/{name}", ah.HandleRemoveItem)
	r.Put("/admin/items/{name}/rarity", ah.HandleSetRarity)
	r.Put("/admin/items/{name}/description", ah.HandleSetDescription)
	r.Put("/admin/items/{name}/image", ah.HandleSetImage)
	r.Post("/admin/give", ah.HandleGiveItem)
	r.Post("/admin/pulls", ah.HandleSetPulls)
	r.Get("/admin/users", ah.HandleListUsers)
	r.Get("/admin/users/{id}/inventory", ah.HandleUserInventory)
	r.Post("/admin/reset", ah.HandleReset)

	return &testEnv{router: r, store: store, clock: clock}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
