package repository

import (
	"context"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// Catalog defines the interface for item catalog persistence.
// Names are matched case-insensitively everywhere.
type Catalog interface {
	// InsertItem returns domain.ErrDuplicateItem when the name is taken
	InsertItem(ctx context.Context, item domain.Item) error
	// DeleteItem is a no-op for unknown names
	DeleteItem(ctx context.Context, name string) error
	// Update* are no-ops for unknown names
	UpdateRarity(ctx context.Context, name string, rarity domain.Rarity) error
	UpdateDescription(ctx context.Context, name, description string) error
	UpdateImage(ctx context.Context, name, image string) error

	GetItem(ctx context.Context, name string) (*domain.Item, error)
	// ListItems returns all items ordered by name ascending
	ListItems(ctx context.Context) ([]domain.Item, error)
	CountItems(ctx context.Context) (int, error)
}
