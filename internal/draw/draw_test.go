package draw

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

func TestDraw_EmptyCatalog(t *testing.T) {
	_, err := New(nil).Draw(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestDraw_SingleItemAlwaysWins(t *testing.T) {
	d := NewSeeded(7)
	items := []domain.Item{{Name: "fork", Rarity: domain.RaritySecret}}
	for i := 0; i < 1000; i++ {
		got, err := d.Draw(items)
		require.NoError(t, err)
		assert.Equal(t, "fork", got.Name)
	}
}

func TestDraw_BoundaryRolls(t *testing.T) {
	items := []domain.Item{
		{Name: "a", Rarity: domain.RarityCommon}, // 0..39
		{Name: "b", Rarity: domain.RaritySecret}, // 40
	}

	tests := []struct {
		name string
		roll float64
		want string
	}{
		{"zero", 0, "a"},
		{"last common slot", 39.5 / 41.0, "a"},
		{"secret slot", 40.5 / 41.0, "b"},
		{"just below one", math.Nextafter(1, 0), "b"},
		{"clamped one", 1, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(func() float64 { return tt.roll })
			got, err := d.Draw(items)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestDraw_Convergence(t *testing.T) {
	items := []domain.Item{
		{Name: "pebble", Rarity: domain.RarityCommon},
		{Name: "stick", Rarity: domain.RarityCommon},
		{Name: "gem", Rarity: domain.RarityRare},
		{Name: "crown", Rarity: domain.RarityLegendary},
		{Name: "mystery", Rarity: "unlisted"},
	}
	total := 0
	for _, it := range items {
		total += it.Rarity.Weight()
	}

	const n = 200000
	d := NewSeeded(42)
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		got, err := d.Draw(items)
		require.NoError(t, err)
		counts[got.Name]++
	}

	for _, it := range items {
		want := float64(it.Rarity.Weight()) / float64(total)
		got := float64(counts[it.Name]) / n
		assert.InDelta(t, want, got, 0.01, "item %s", it.Name)
	}
	// same rarity is equally likely
	assert.InDelta(t, counts["pebble"], counts["stick"], n*0.01)
}

func BenchmarkDraw(b *testing.B) {
	for _, size := range []int{16, 256, 4096} {
		items := make([]domain.Item, size)
		for i := range items {
			items[i] = domain.Item{Name: fmt.Sprintf("item-%d", i), Rarity: domain.KnownRarities[i%len(domain.KnownRarities)]}
		}
		d := NewSeeded(1)
		b.Run(fmt.Sprintf("items=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = d.Draw(items)
			}
		})
	}
}
