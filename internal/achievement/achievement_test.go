package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/database/memory"
	"github.com/osse101/TactasRNG_Go/internal/domain"
)

func TestDefinition_Met(t *testing.T) {
	tests := []struct {
		name string
		id   domain.AchievementID
		snap domain.StatsSnapshot
		want bool
	}{
		{"no pulls", FirstPull, domain.StatsSnapshot{}, false},
		{"first pull", FirstPull, domain.StatsSnapshot{Pulls: 1}, true},
		{"nine pulls", TenPulls, domain.StatsSnapshot{Pulls: 9}, false},
		{"ten pulls", TenPulls, domain.StatsSnapshot{Pulls: 10}, true},
		{"hundred pulls", HundredPulls, domain.StatsSnapshot{Pulls: 250}, true},
		{"rare", RarePull, domain.StatsSnapshot{Rares: 1}, true},
		{"legendary does not count as rare", RarePull, domain.StatsSnapshot{Legendaries: 3}, false},
		{"legendary", LegendaryPull, domain.StatsSnapshot{Legendaries: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, def.Met(tt.snap))
		})
	}
}

func evaluate(t *testing.T, store *memory.Store, engine *Engine, snap domain.StatsSnapshot) []domain.Achievement {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginUserTx(ctx, "u1")
	require.NoError(t, err)
	got, err := engine.Evaluate(ctx, tx, "u1", snap)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return got
}

func ids(list []domain.Achievement) []domain.AchievementID {
	out := make([]domain.AchievementID, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestEngine_Evaluate_GrantsOnceInTableOrder(t *testing.T) {
	store := memory.NewStore()
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(func() time.Time { return fixed })

	got := evaluate(t, store, engine, domain.StatsSnapshot{Pulls: 10, Rares: 2, Legendaries: 1})
	assert.Equal(t, []domain.AchievementID{FirstPull, TenPulls, RarePull, LegendaryPull}, ids(got))
	assert.Equal(t, fixed, got[0].GrantedAt)

	// nothing new the second time
	got = evaluate(t, store, engine, domain.StatsSnapshot{Pulls: 11, Rares: 2, Legendaries: 1})
	assert.Empty(t, got)

	got = evaluate(t, store, engine, domain.StatsSnapshot{Pulls: 100})
	assert.Equal(t, []domain.AchievementID{HundredPulls}, ids(got))
}

func TestEngine_Evaluate_NeverRevokes(t *testing.T) {
	store := memory.NewStore()
	engine := NewEngine(nil)

	evaluate(t, store, engine, domain.StatsSnapshot{Pulls: 10})
	got := evaluate(t, store, engine, domain.StatsSnapshot{Pulls: 0})
	assert.Empty(t, got)

	grants, err := store.GetAchievements(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, grants, 2)
}

func TestDescribe_TableOrder(t *testing.T) {
	now := time.Now()
	grants := []domain.AchievementGrant{
		{AchievementID: LegendaryPull, GrantedAt: now},
		{AchievementID: "retired", GrantedAt: now},
		{AchievementID: FirstPull, GrantedAt: now.Add(time.Minute)},
	}
	got := Describe(grants)
	require.Len(t, got, 2)
	assert.Equal(t, FirstPull, got[0].ID)
	assert.Equal(t, "First Pull!", got[0].Name)
	assert.Equal(t, LegendaryPull, got[1].ID)
}
