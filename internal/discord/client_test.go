package discord

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/handler"
)

func TestAPIClient_Pull(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.Mux.HandleFunc("POST /api/v1/pull", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
		var req handler.UserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, handler.UserRequest{UserID: "42", Username: "Tester"}, req)
		WriteJSON(w, http.StatusOK, gacha.PullResult{Item: "fork", Rarity: domain.RaritySecret, Pulls: 1})
	})

	res, err := ctx.APIClient.Pull("42", "Tester")
	require.NoError(t, err)
	assert.Equal(t, "fork", res.Item)
	assert.Equal(t, domain.RaritySecret, res.Rarity)
}

func TestAPIClient_ErrorDecoding(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.Mux.HandleFunc("GET /api/v1/items/{name}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cheese cup", r.PathValue("name"))
		WriteJSON(w, http.StatusNotFound, handler.ErrorResponse{Error: "Item not found", Suggestions: []string{"cheese cup"}})
	})

	_, err := ctx.APIClient.GetItem("cheese cup")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"cheese cup"}, apiErr.Suggestions)
}

func TestAPIClient_RetriesServerErrors(t *testing.T) {
	ctx := SetupTestContext(t)
	var attempts atomic.Int32
	ctx.Mux.HandleFunc("GET /api/v1/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		if attempts.Add(1) < 3 {
			WriteJSON(w, http.StatusInternalServerError, handler.ErrorResponse{Error: "Something went wrong"})
			return
		}
		WriteJSON(w, http.StatusOK, handler.LeaderboardResponse{Entries: []domain.LeaderboardEntry{{UserID: "1", Pulls: 9}}})
	})

	entries, err := ctx.APIClient.Leaderboard(5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestAPIClient_GivesUpAfterMaxRetries(t *testing.T) {
	ctx := SetupTestContext(t)
	var attempts atomic.Int32
	ctx.Mux.HandleFunc("GET /api/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		WriteJSON(w, http.StatusServiceUnavailable, handler.ErrorResponse{Error: "down"})
	})

	_, err := ctx.APIClient.Stats("42")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
	assert.Equal(t, int32(apiMaxRetries+1), attempts.Load())
}

func TestAPIClient_AdminRoutes(t *testing.T) {
	ctx := SetupTestContext(t)
	var seen []string
	record := func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.EscapedPath())
		WriteJSON(w, http.StatusOK, handler.SuccessResponse{Message: "ok"})
	}
	ctx.Mux.HandleFunc("DELETE /api/v1/admin/items/{name}", record)
	ctx.Mux.HandleFunc("PUT /api/v1/admin/items/{name}/rarity", record)
	ctx.Mux.HandleFunc("POST /api/v1/admin/reset", func(w http.ResponseWriter, r *http.Request) {
		var req handler.ResetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, handler.ResetConfirmationKey, req.Confirm)
		record(w, r)
	})

	require.NoError(t, ctx.APIClient.RemoveItem("laser pointer"))
	require.NoError(t, ctx.APIClient.SetRarity("ó", "rare"))
	require.NoError(t, ctx.APIClient.ResetAll())

	assert.Equal(t, []string{
		"DELETE /api/v1/admin/items/laser%20pointer",
		"PUT /api/v1/admin/items/%C3%B3/rarity",
		"POST /api/v1/admin/reset",
	}, seen)
}
