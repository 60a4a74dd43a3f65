package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

func TestCatalogRepository_InsertAndGet(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewCatalogRepository(pool)

	require.NoError(t, repo.InsertItem(ctx, domain.Item{Name: "Spork", Rarity: domain.RarityRare, Description: "pointy"}))

	item, err := repo.GetItem(ctx, "  SPORK ")
	require.NoError(t, err)
	assert.Equal(t, "Spork", item.Name)
	assert.Equal(t, domain.RarityRare, item.Rarity)
	assert.Equal(t, "pointy", item.Description)

	err = repo.InsertItem(ctx, domain.Item{Name: "spork", Rarity: domain.RarityCommon})
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)

	_, err = repo.GetItem(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCatalogRepository_UpdatesAndDelete(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewCatalogRepository(pool)

	require.NoError(t, repo.InsertItem(ctx, domain.Item{Name: "Fork", Rarity: domain.RarityCommon}))

	require.NoError(t, repo.UpdateRarity(ctx, "fork", domain.RarityEpic))
	require.NoError(t, repo.UpdateDescription(ctx, "FORK", "four tines"))
	require.NoError(t, repo.UpdateImage(ctx, "Fork", "https://example.com/fork.png"))

	item, err := repo.GetItem(ctx, "fork")
	require.NoError(t, err)
	assert.Equal(t, domain.RarityEpic, item.Rarity)
	assert.Equal(t, "four tines", item.Description)
	assert.Equal(t, "https://example.com/fork.png", item.Image)

	// unknown names are no-ops
	assert.NoError(t, repo.UpdateRarity(ctx, "ghost", domain.RarityEpic))
	assert.NoError(t, repo.DeleteItem(ctx, "ghost"))

	require.NoError(t, repo.DeleteItem(ctx, "fork"))
	n, err := repo.CountItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogRepository_ListItemsOrdered(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewCatalogRepository(pool)

	for _, name := range []string{"Wrench", "apple", "Hammer"} {
		require.NoError(t, repo.InsertItem(ctx, domain.Item{Name: name, Rarity: domain.RarityCommon}))
	}

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "apple", items[0].Name)
	assert.Equal(t, "Hammer", items[1].Name)
	assert.Equal(t, "Wrench", items[2].Name)
}
