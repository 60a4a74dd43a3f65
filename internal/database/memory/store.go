// Package memory is a map-backed Catalog and Ledger for tests and throwaway runs.
// Transactions stage per-user copies and publish them on commit.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/concurrency"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

type userState struct {
	user      domain.User
	seq       int64
	inventory map[string]domain.InventoryEntry // keyed by domain.NameKey
}

func (s *userState) clone() *userState {
	c := &userState{
		user:      s.user,
		seq:       s.seq,
		inventory: make(map[string]domain.InventoryEntry, len(s.inventory)),
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	return c
}

// Store holds all state in memory
type Store struct {
	mu      sync.RWMutex
	items   map[string]domain.Item
	users   map[string]*userState
	grants  map[string]map[domain.AchievementID]time.Time // survives ResetAll
	nextSeq int64
	locks   *concurrency.LockManager

	// FailOn makes the named ledger operation fail, for rollback tests
	FailOn string
}

// ErrInjected is returned by operations named in FailOn
var ErrInjected = errors.New("injected failure")

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		items:  make(map[string]domain.Item),
		users:  make(map[string]*userState),
		grants: make(map[string]map[domain.AchievementID]time.Time),
		locks:  concurrency.NewLockManager(),
	}
}

var (
	_ repository.Catalog = (*Store)(nil)
	_ repository.Ledger  = (*Store)(nil)
)

// Catalog

func (s *Store) InsertItem(_ context.Context, item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.NameKey(item.Name)
	if _, ok := s.items[key]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateItem, item.Name)
	}
	s.items[key] = item
	return nil
}

func (s *Store) DeleteItem(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, domain.NameKey(name))
	return nil
}

func (s *Store) UpdateRarity(_ context.Context, name string, rarity domain.Rarity) error {
	s.updateItem(name, func(it *domain.Item) { it.Rarity = rarity })
	return nil
}

func (s *Store) UpdateDescription(_ context.Context, name, description string) error {
	s.updateItem(name, func(it *domain.Item) { it.Description = description })
	return nil
}

func (s *Store) UpdateImage(_ context.Context, name, image string) error {
	s.updateItem(name, func(it *domain.Item) { it.Image = image })
	return nil
}

func (s *Store) updateItem(name string, fn func(*domain.Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.NameKey(name)
	if it, ok := s.items[key]; ok {
		fn(&it)
		s.items[key] = it
	}
}

func (s *Store) GetItem(_ context.Context, name string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[domain.NameKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
	}
	return &it, nil
}

func (s *Store) ListItems(_ context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]domain.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, s.items[k])
	}
	s.mu.RUnlock()
	return items, nil
}

func (s *Store) CountItems(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// Ledger

func (s *Store) BeginUserTx(ctx context.Context, userID string) (repository.LedgerTx, error) {
	release := s.locks.Lock(userID)
	if err := ctx.Err(); err != nil {
		release()
		return nil, err
	}
	return &ledgerTx{store: s, release: release, staged: make(map[string]*userState)}, nil
}

func (s *Store) GetUser(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	u := st.user
	return &u, nil
}

func (s *Store) GetInventory(_ context.Context, userID string) ([]domain.InventoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return sortedInventory(st.inventory), nil
}

func (s *Store) GetAchievements(_ context.Context, userID string) ([]domain.AchievementGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var grants []domain.AchievementGrant
	for id, at := range s.grants[userID] {
		grants = append(grants, domain.AchievementGrant{UserID: userID, AchievementID: id, GrantedAt: at})
	}
	sort.Slice(grants, func(i, j int) bool {
		if !grants[i].GrantedAt.Equal(grants[j].GrantedAt) {
			return grants[i].GrantedAt.Before(grants[j].GrantedAt)
		}
		return grants[i].AchievementID < grants[j].AchievementID
	})
	return grants, nil
}

func (s *Store) usersBySeq() []*userState {
	all := make([]*userState, 0, len(s.users))
	for _, st := range s.users {
		all = append(all, st)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })
	return all
}

func (s *Store) ListUsers(_ context.Context, limit, offset int) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.usersBySeq()
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	users := make([]domain.User, 0, len(all))
	for _, st := range all {
		users = append(users, st.user)
	}
	return users, nil
}

func (s *Store) Leaderboard(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.usersBySeq()
	sort.SliceStable(all, func(i, j int) bool { return all[i].user.Pulls > all[j].user.Pulls })
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	entries := make([]domain.LeaderboardEntry, 0, len(all))
	for _, st := range all {
		entries = append(entries, domain.LeaderboardEntry{UserID: st.user.ID, Username: st.user.Username, Pulls: st.user.Pulls})
	}
	return entries, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *Store) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*userState)
	return nil
}

func sortedInventory(inv map[string]domain.InventoryEntry) []domain.InventoryEntry {
	keys := make([]string, 0, len(inv))
	for k := range inv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]domain.InventoryEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, inv[k])
	}
	return entries
}
