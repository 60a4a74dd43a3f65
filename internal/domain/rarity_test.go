package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRarityWeight(t *testing.T) {
	tests := []struct {
		rarity Rarity
		want   int
	}{
		{RarityCommon, 40},
		{RarityUncommon, 25},
		{RarityRare, 15},
		{RarityEpic, 8},
		{RarityLegendary, 5},
		{RarityMythic, 3},
		{RarityDivine, 2},
		{RaritySecret, 1},
		{Rarity("cursed"), DefaultRarityWeight},
		{Rarity(""), DefaultRarityWeight},
	}

	for _, tt := range tests {
		t.Run(string(tt.rarity), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rarity.Weight())
		})
	}
}

func TestParseRarity(t *testing.T) {
	r, err := ParseRarity("  Legendary ")
	require.NoError(t, err)
	assert.Equal(t, RarityLegendary, r)

	r, err = ParseRarity("shiny")
	require.NoError(t, err)
	assert.False(t, r.IsKnown())

	_, err = ParseRarity("   ")
	assert.ErrorIs(t, err, ErrInvalidRarity)
}

func TestRarityTiers(t *testing.T) {
	for _, r := range KnownRarities {
		assert.False(t, r.IsRareTier() && r.IsLegendaryTier(), "tiers must not overlap for %s", r)
	}
	assert.True(t, RarityRare.IsRareTier())
	assert.True(t, RarityEpic.IsRareTier())
	assert.False(t, RarityUncommon.IsRareTier())
	assert.True(t, RaritySecret.IsLegendaryTier())
	assert.False(t, RarityEpic.IsLegendaryTier())
}

func TestSnapshotFromInventory(t *testing.T) {
	entries := []InventoryEntry{
		{ItemName: "cappy", Rarity: RarityCommon, Amount: 7},
		{ItemName: "hammer", Rarity: RarityRare, Amount: 3},
		{ItemName: "gumball", Rarity: RarityEpic, Amount: 1},
		{ItemName: "fork", Rarity: RaritySecret, Amount: 12},
	}

	s := SnapshotFromInventory(23, entries)

	assert.Equal(t, int64(23), s.Pulls)
	assert.Equal(t, 2, s.Rares, "distinct rare-tier entries, not copies")
	assert.Equal(t, 1, s.Legendaries)
}

func TestClaimErrorMatchesSentinel(t *testing.T) {
	var err error = ClaimError{Period: ClaimDaily, Key: "2026-10-15"}

	assert.True(t, errors.Is(err, ErrAlreadyClaimed))
	assert.Contains(t, err.Error(), ErrMsgAlreadyClaimed)
	assert.Contains(t, err.Error(), "2026-10-15")

	var ce ClaimError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ClaimDaily, ce.Period)
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "laser pointer", NameKey("  Laser Pointer "))
	assert.Equal(t, "ó", NameKey("Ó"))
}
