// Package catalog manages the item catalog: admin writes, cached reads and name suggestions.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sahilm/fuzzy"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/logger"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// Service defines the catalog operations
type Service interface {
	AddItem(ctx context.Context, name, rarity string) (*domain.Item, error)
	RemoveItem(ctx context.Context, name string) error
	SetRarity(ctx context.Context, name, rarity string) error
	SetDescription(ctx context.Context, name, description string) error
	SetImage(ctx context.Context, name, image string) error

	GetItem(ctx context.Context, name string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	// Snapshot reads the catalog straight from storage, bypassing the cache
	Snapshot(ctx context.Context) ([]domain.Item, error)
	Count(ctx context.Context) (int, error)
	Suggest(ctx context.Context, query string, limit int) ([]string, error)

	// SeedDefaults inserts items only when the catalog is empty and reports how many were added
	SeedDefaults(ctx context.Context, items []domain.Item) (int, error)
}

type cacheEntry struct {
	item  *domain.Item
	items []domain.Item
}

type service struct {
	repo  repository.Catalog
	bus   event.Bus
	cache *expirable.LRU[string, cacheEntry]

	// gen counts completed writes. A read only fills the cache when no write
	// finished while it was at the repository.
	mu  sync.Mutex
	gen uint64
}

// NewService creates a catalog service. bus may be nil.
func NewService(repo repository.Catalog, bus event.Bus) Service {
	return &service{
		repo:  repo,
		bus:   bus,
		cache: expirable.NewLRU[string, cacheEntry](CacheSize, nil, CacheTTL),
	}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	return name, nil
}

func (s *service) AddItem(ctx context.Context, name, rarity string) (*domain.Item, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	r, err := domain.ParseRarity(rarity)
	if err != nil {
		return nil, err
	}

	item := domain.Item{Name: name, Rarity: r}
	err = s.repo.InsertItem(ctx, item)
	s.invalidate()
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgItemAdded, "item", name, "rarity", r)
	s.publish(ctx, ActionAdded, name)
	return &item, nil
}

func (s *service) RemoveItem(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	err = s.repo.DeleteItem(ctx, name)
	s.invalidate()
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgItemRemoved, "item", name)
	s.publish(ctx, ActionRemoved, name)
	return nil
}

func (s *service) SetRarity(ctx context.Context, name, rarity string) error {
	r, err := domain.ParseRarity(rarity)
	if err != nil {
		return err
	}
	return s.update(ctx, name, ActionRarityChanged, func(n string) error {
		return s.repo.UpdateRarity(ctx, n, r)
	})
}

func (s *service) SetDescription(ctx context.Context, name, description string) error {
	return s.update(ctx, name, ActionDescriptionChanged, func(n string) error {
		return s.repo.UpdateDescription(ctx, n, strings.TrimSpace(description))
	})
}

func (s *service) SetImage(ctx context.Context, name, image string) error {
	return s.update(ctx, name, ActionImageChanged, func(n string) error {
		return s.repo.UpdateImage(ctx, n, strings.TrimSpace(image))
	})
}

func (s *service) update(ctx context.Context, name, action string, write func(string) error) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	err = write(name)
	s.invalidate()
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgItemUpdated, "item", name, "action", action)
	s.publish(ctx, action, name)
	return nil
}

func (s *service) publish(ctx context.Context, action, name string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.NewCatalogChangedEvent(action, name)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "action", action, "error", err)
	}
}

func (s *service) invalidate() {
	s.mu.Lock()
	s.gen++
	s.cache.Purge()
	s.mu.Unlock()
}

func (s *service) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// fill caches e unless a write completed after the read began at gen
func (s *service) fill(gen uint64, key string, e cacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.cache.Add(key, e)
	}
}

func (s *service) GetItem(ctx context.Context, name string) (*domain.Item, error) {
	key := domain.NameKey(name)
	if e, ok := s.cache.Get(key); ok && e.item != nil {
		it := *e.item
		return &it, nil
	}
	gen := s.generation()
	item, err := s.repo.GetItem(ctx, name)
	if err != nil {
		return nil, err
	}
	cached := *item
	s.fill(gen, key, cacheEntry{item: &cached})
	return item, nil
}

func (s *service) ListItems(ctx context.Context) ([]domain.Item, error) {
	if e, ok := s.cache.Get(listKey); ok {
		return append([]domain.Item(nil), e.items...), nil
	}
	gen := s.generation()
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	s.fill(gen, listKey, cacheEntry{items: items})
	return append([]domain.Item(nil), items...), nil
}

func (s *service) Snapshot(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.CountItems(ctx)
}

// itemNames adapts a catalog listing to fuzzy.Source
type itemNames []domain.Item

func (n itemNames) String(i int) string { return domain.NameKey(n[i].Name) }
func (n itemNames) Len() int            { return len(n) }

// Suggest returns catalog names closest to query, best match first.
// An empty query returns the first names in catalog order, for autocomplete.
func (s *service) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if limit > MaxSuggestLimit {
		limit = MaxSuggestLimit
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	q := domain.NameKey(query)
	var names []string
	if q == "" {
		for i := 0; i < len(items) && i < limit; i++ {
			names = append(names, items[i].Name)
		}
		return names, nil
	}

	for _, m := range fuzzy.FindFrom(q, itemNames(items)) {
		names = append(names, items[m.Index].Name)
		if len(names) == limit {
			break
		}
	}
	return names, nil
}

func (s *service) SeedDefaults(ctx context.Context, items []domain.Item) (int, error) {
	n, err := s.repo.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.FromContext(ctx).Debug(LogMsgSeedSkipped, "count", n)
		return 0, nil
	}

	added := 0
	for _, it := range items {
		err := s.repo.InsertItem(ctx, it)
		if errors.Is(err, domain.ErrDuplicateItem) {
			continue
		}
		if err != nil {
			s.invalidate()
			return added, fmt.Errorf("failed to seed %s: %w", it.Name, err)
		}
		added++
	}
	s.invalidate()
	logger.FromContext(ctx).Info(LogMsgSeededDefaults, "count", added)
	return added, nil
}
