package repository

import (
	"context"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// Ledger defines the interface for per-user state persistence
type Ledger interface {
	// BeginUserTx starts a transaction that holds the per-user lock for userID
	// until Commit or Rollback. Two transactions for the same user never interleave.
	BeginUserTx(ctx context.Context, userID string) (LedgerTx, error)

	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GetAchievements(ctx context.Context, userID string) ([]domain.AchievementGrant, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	CountUsers(ctx context.Context) (int, error)

	// ResetAll deletes all users and inventory. Achievement grants are kept.
	ResetAll(ctx context.Context) error
}

// LedgerTx is a per-user transaction
type LedgerTx interface {
	Tx

	// EnsureUser creates the user with zero counters if absent and returns the current row.
	// A non-empty username refreshes the cached display name.
	EnsureUser(ctx context.Context, userID, username string) (*domain.User, error)
	IncrementPulls(ctx context.Context, userID string, delta int64) (int64, error)
	AddCoins(ctx context.Context, userID string, delta int64) (int64, error)
	SetPulls(ctx context.Context, userID string, value int64) error
	SetLastDaily(ctx context.Context, userID, dayKey string) error
	SetLastWeekly(ctx context.Context, userID, weekKey string) error

	// AddInventory increments the entry or creates it with the rarity snapshot
	AddInventory(ctx context.Context, userID, itemName string, rarity domain.Rarity, amount int64) (int64, error)
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)

	GetAchievementIDs(ctx context.Context, userID string) (map[domain.AchievementID]bool, error)
	// InsertAchievement is idempotent and reports whether a new grant was written
	InsertAchievement(ctx context.Context, userID string, id domain.AchievementID, grantedAt time.Time) (bool, error)
}
