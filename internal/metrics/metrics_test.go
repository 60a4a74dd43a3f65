package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/event"
)

func TestEventMetricsCollector_RecordsGachaEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	pulls := testutil.ToFloat64(PullsTotal.WithLabelValues("secret"))
	jackpots := testutil.ToFloat64(JackpotsTotal)
	claims := testutil.ToFloat64(ClaimsTotal.WithLabelValues("daily", ClaimResultClaimed))
	coins := testutil.ToFloat64(CoinsAwarded)
	grants := testutil.ToFloat64(AchievementsGranted.WithLabelValues("first_pull"))

	payload := domain.PullCompletedPayload{UserID: "u1", ItemName: "fork", Rarity: domain.RaritySecret}
	require.NoError(t, bus.Publish(ctx, event.NewPullCompletedEvent(payload)))
	require.NoError(t, bus.Publish(ctx, event.NewJackpotPullEvent(payload)))
	require.NoError(t, bus.Publish(ctx, event.NewRewardClaimedEvent(domain.RewardClaimedPayload{
		UserID: "u1", Period: domain.ClaimDaily, Amount: 100, Coins: 100,
	})))
	// payloads relayed from JSON arrive as maps
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type:    event.AchievementUnlocked,
		Payload: map[string]interface{}{"user_id": "u1", "achievement": "first_pull"},
	}))

	assert.Equal(t, pulls+1, testutil.ToFloat64(PullsTotal.WithLabelValues("secret")))
	assert.Equal(t, jackpots+1, testutil.ToFloat64(JackpotsTotal))
	assert.Equal(t, claims+1, testutil.ToFloat64(ClaimsTotal.WithLabelValues("daily", ClaimResultClaimed)))
	assert.Equal(t, coins+100, testutil.ToFloat64(CoinsAwarded))
	assert.Equal(t, grants+1, testutil.ToFloat64(AchievementsGranted.WithLabelValues("first_pull")))
}

func TestRecordRejectedClaim(t *testing.T) {
	before := testutil.ToFloat64(ClaimsTotal.WithLabelValues("weekly", ClaimResultAlreadyClaimed))
	RecordRejectedClaim(domain.ClaimWeekly)
	assert.Equal(t, before+1, testutil.ToFloat64(ClaimsTotal.WithLabelValues("weekly", ClaimResultAlreadyClaimed)))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/items/{name}", "418"))
	for _, name := range []string{"fork", "spork"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+name, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/items/{name}", "418")))
}
