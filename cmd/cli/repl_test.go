package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/concurrency"
	"github.com/osse101/TactasRNG_Go/internal/database/sqlite"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/draw"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/reward"
)

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	catalogSvc := catalog.NewService(sqlite.NewCatalogRepository(db), nil)
	_, err = catalogSvc.AddItem(ctx, "hammer", "rare")
	require.NoError(t, err)

	clock := reward.NewManualClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	svc := gacha.NewService(
		sqlite.NewLedgerRepository(db, concurrency.NewLockManager()),
		catalogSvc,
		draw.NewSeeded(1),
		reward.NewSchedule(clock, time.UTC),
		nil,
	)
	out := &bytes.Buffer{}
	return newREPL(svc, out), out
}

func TestREPL_Session(t *testing.T) {
	r, out := newTestREPL(t)

	input := strings.Join([]string{"stats", "inv", "pull", "inv", "ach", "daily", "daily", "bogus", "exit", "pull"}, "\n")
	require.NoError(t, r.Run(context.Background(), strings.NewReader(input)))

	text := out.String()
	assert.Contains(t, text, msgNoStats)
	assert.Contains(t, text, msgEmptyInv)
	assert.Contains(t, text, "You pulled: hammer (Rare)")
	assert.Contains(t, text, "hammer (Rare) x1")
	assert.Contains(t, text, "🏅 ")
	assert.Contains(t, text, "Claimed 100 coins. Balance: 100")
	assert.Contains(t, text, "Error: ")
	assert.Contains(t, text, msgUsage)
	assert.True(t, strings.HasSuffix(text, msgGoodbye+"\n"))
	assert.Equal(t, 1, strings.Count(text, "You pulled:"), "commands after exit must not run")
}

func TestREPL_EOFEndsSession(t *testing.T) {
	r, out := newTestREPL(t)
	require.NoError(t, r.Run(context.Background(), strings.NewReader("ach\n")))
	assert.Contains(t, out.String(), msgNoAch)
}

func TestRarityLabel(t *testing.T) {
	assert.Equal(t, "Legendary", rarityLabel(domain.RarityLegendary))
	assert.Equal(t, "Shiny Gold", rarityLabel(domain.Rarity("shiny gold")))
}
