package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/database/query"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// CatalogRepository implements repository.Catalog on SQLite
type CatalogRepository struct {
	db *sql.DB
	qb query.Builder
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB) repository.Catalog {
	return &CatalogRepository{db: db, qb: query.SQLite()}
}

func (r *CatalogRepository) InsertItem(ctx context.Context, item domain.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (item_key, item_name, rarity, description, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		domain.NameKey(item.Name), item.Name, string(item.Rarity), item.Description, item.Image, toMillis(time.Now()))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateItem, item.Name)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) DeleteItem(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE item_key = ?`, domain.NameKey(name)); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) UpdateRarity(ctx context.Context, name string, rarity domain.Rarity) error {
	return r.updateField(ctx, name, "rarity", string(rarity))
}

func (r *CatalogRepository) UpdateDescription(ctx context.Context, name, description string) error {
	return r.updateField(ctx, name, "description", description)
}

func (r *CatalogRepository) UpdateImage(ctx context.Context, name, image string) error {
	return r.updateField(ctx, name, "image", image)
}

func (r *CatalogRepository) updateField(ctx context.Context, name, column, value string) error {
	q, args, err := r.qb.UpdateItemField(domain.NameKey(name), column, value)
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update item %s: %w", column, err)
	}
	return nil
}

func (r *CatalogRepository) GetItem(ctx context.Context, name string) (*domain.Item, error) {
	q, args, err := r.qb.GetItem(domain.NameKey(name))
	if err != nil {
		return nil, fmt.Errorf("build get item: %w", err)
	}
	var item domain.Item
	var rarity string
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&item.Name, &rarity, &item.Description, &item.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	item.Rarity = domain.Rarity(rarity)
	return &item, nil
}

func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	q, args, err := r.qb.ListItems()
	if err != nil {
		return nil, fmt.Errorf("build list items: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		var rarity string
		if err := rows.Scan(&item.Name, &rarity, &item.Description, &item.Image); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Rarity = domain.Rarity(rarity)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CatalogRepository) CountItems(ctx context.Context) (int, error) {
	q, args, err := r.qb.Count("items")
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	return count(ctx, r.db, q, args)
}

var _ repository.Catalog = (*CatalogRepository)(nil)
