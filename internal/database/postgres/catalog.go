package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TactasRNG_Go/internal/database/query"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
	qb query.Builder
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) repository.Catalog {
	return &CatalogRepository{db: db, qb: query.Postgres()}
}

// InsertItem adds an item; the lowercased name is the primary key
func (r *CatalogRepository) InsertItem(ctx context.Context, item domain.Item) error {
	_, err := r.db.Exec(ctx, SQLInsertItem,
		domain.NameKey(item.Name), item.Name, string(item.Rarity), item.Description, item.Image)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateItem, item.Name)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertItem, err)
	}
	return nil
}

// DeleteItem removes an item if present
func (r *CatalogRepository) DeleteItem(ctx context.Context, name string) error {
	if _, err := r.db.Exec(ctx, SQLDeleteItem, domain.NameKey(name)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItem, err)
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
	sql, args, err := r.qb.UpdateItemField(domain.NameKey(name), column, value)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToUpdateItem, column, err)
	}
	return nil
}

// GetItem retrieves an item by case-insensitive name
func (r *CatalogRepository) GetItem(ctx context.Context, name string) (*domain.Item, error) {
	sql, args, err := r.qb.GetItem(domain.NameKey(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	var item domain.Item
	var rarity string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&item.Name, &rarity, &item.Description, &item.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	item.Rarity = domain.Rarity(rarity)
	return &item, nil
}

// ListItems returns the catalog ordered by name
func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	sql, args, err := r.qb.ListItems()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		var rarity string
		if err := rows.Scan(&item.Name, &rarity, &item.Description, &item.Image); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		item.Rarity = domain.Rarity(rarity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, nil
}

// CountItems returns the catalog size
func (r *CatalogRepository) CountItems(ctx context.Context) (int, error) {
	return count(ctx, r.db, r.qb, "items")
}

func count(ctx context.Context, db *pgxpool.Pool, qb query.Builder, table string) (int, error) {
	sql, args, err := qb.Count(table)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	var n int
	if err := db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountRows, err)
	}
	return n, nil
}
