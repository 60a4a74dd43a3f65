package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

type ledgerTx struct {
	store   *Store
	release func()
	staged  map[string]*userState
	// created marks staged users that did not exist at begin
	created map[string]bool
	grants  map[string]map[domain.AchievementID]time.Time
	done    bool
}

func (t *ledgerTx) fail(op string) error {
	if t.store.FailOn == op {
		return fmt.Errorf("%s: %w", op, ErrInjected)
	}
	return nil
}

// load returns the staged copy of the user, or nil when the user does not exist
func (t *ledgerTx) load(userID string) *userState {
	if st, ok := t.staged[userID]; ok {
		return st
	}
	t.store.mu.RLock()
	st, ok := t.store.users[userID]
	t.store.mu.RUnlock()
	if !ok {
		return nil
	}
	c := st.clone()
	t.staged[userID] = c
	return c
}

func (t *ledgerTx) loadOrCreate(userID string) *userState {
	if st := t.load(userID); st != nil {
		return st
	}
	st := &userState{
		user:      domain.User{ID: userID, CreatedAt: time.Now().UTC()},
		inventory: make(map[string]domain.InventoryEntry),
	}
	if t.created == nil {
		t.created = make(map[string]bool)
	}
	t.created[userID] = true
	t.staged[userID] = st
	return st
}

func (t *ledgerTx) Commit(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	defer t.release()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, st := range t.staged {
		if t.created[id] {
			s.nextSeq++
			st.seq = s.nextSeq
		}
		s.users[id] = st
	}
	for userID, ids := range t.grants {
		if s.grants[userID] == nil {
			s.grants[userID] = make(map[domain.AchievementID]time.Time)
		}
		for id, at := range ids {
			if _, ok := s.grants[userID][id]; !ok {
				s.grants[userID][id] = at
			}
		}
	}
	return nil
}

func (t *ledgerTx) Rollback(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	t.release()
	return nil
}

func (t *ledgerTx) EnsureUser(_ context.Context, userID, username string) (*domain.User, error) {
	if err := t.fail("EnsureUser"); err != nil {
		return nil, err
	}
	st := t.loadOrCreate(userID)
	if username != "" {
		st.user.Username = username
	}
	u := st.user
	return &u, nil
}

func (t *ledgerTx) IncrementPulls(_ context.Context, userID string, delta int64) (int64, error) {
	if err := t.fail("IncrementPulls"); err != nil {
		return 0, err
	}
	st := t.loadOrCreate(userID)
	if st.user.Pulls+delta < 0 {
		return 0, fmt.Errorf("%w: pulls cannot go below zero", domain.ErrInvalidAmount)
	}
	st.user.Pulls += delta
	return st.user.Pulls, nil
}

func (t *ledgerTx) AddCoins(_ context.Context, userID string, delta int64) (int64, error) {
	if err := t.fail("AddCoins"); err != nil {
		return 0, err
	}
	st := t.loadOrCreate(userID)
	if st.user.Coins+delta < 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInsufficientCoins, userID)
	}
	st.user.Coins += delta
	return st.user.Coins, nil
}

func (t *ledgerTx) SetPulls(_ context.Context, userID string, value int64) error {
	if err := t.fail("SetPulls"); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%w: pulls cannot be negative", domain.ErrInvalidAmount)
	}
	t.loadOrCreate(userID).user.Pulls = value
	return nil
}

func (t *ledgerTx) SetLastDaily(_ context.Context, userID, dayKey string) error {
	if err := t.fail("SetLastDaily"); err != nil {
		return err
	}
	if st := t.load(userID); st != nil {
		st.user.LastDaily = dayKey
	}
	return nil
}

func (t *ledgerTx) SetLastWeekly(_ context.Context, userID, weekKey string) error {
	if err := t.fail("SetLastWeekly"); err != nil {
		return err
	}
	if st := t.load(userID); st != nil {
		st.user.LastWeekly = weekKey
	}
	return nil
}

func (t *ledgerTx) AddInventory(_ context.Context, userID, itemName string, rarity domain.Rarity, amount int64) (int64, error) {
	if err := t.fail("AddInventory"); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	st := t.load(userID)
	if st == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	key := domain.NameKey(itemName)
	e, ok := st.inventory[key]
	if !ok {
		e = domain.InventoryEntry{ItemName: itemName, Rarity: rarity}
	}
	e.Amount += amount
	st.inventory[key] = e
	return e.Amount, nil
}

func (t *ledgerTx) GetInventory(_ context.Context, userID string) ([]domain.InventoryEntry, error) {
	st := t.load(userID)
	if st == nil {
		return nil, nil
	}
	return sortedInventory(st.inventory), nil
}

func (t *ledgerTx) GetAchievementIDs(_ context.Context, userID string) (map[domain.AchievementID]bool, error) {
	ids := make(map[domain.AchievementID]bool)
	t.store.mu.RLock()
	for id := range t.store.grants[userID] {
		ids[id] = true
	}
	t.store.mu.RUnlock()
	for id := range t.grants[userID] {
		ids[id] = true
	}
	return ids, nil
}

func (t *ledgerTx) InsertAchievement(ctx context.Context, userID string, id domain.AchievementID, grantedAt time.Time) (bool, error) {
	if err := t.fail("InsertAchievement"); err != nil {
		return false, err
	}
	existing, _ := t.GetAchievementIDs(ctx, userID)
	if existing[id] {
		return false, nil
	}
	if t.grants == nil {
		t.grants = make(map[string]map[domain.AchievementID]time.Time)
	}
	if t.grants[userID] == nil {
		t.grants[userID] = make(map[domain.AchievementID]time.Time)
	}
	t.grants[userID][id] = grantedAt
	return true, nil
}
