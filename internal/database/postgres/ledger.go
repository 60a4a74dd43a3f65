package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TactasRNG_Go/internal/database/query"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
	qb query.Builder
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) repository.Ledger {
	return &LedgerRepository{db: db, qb: query.Postgres()}
}

// BeginUserTx opens a transaction and takes the user's advisory lock.
// The lock is released by Postgres on commit or rollback.
func (r *LedgerRepository) BeginUserTx(ctx context.Context, userID string) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	if _, err := tx.Exec(ctx, SQLAdvisoryLock, hashUserKey(userID)); err != nil {
		SafeRollback(ctx, tx)
		return nil, fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
	return &ledgerTx{tx: tx, qb: r.qb}, nil
}

func (r *LedgerRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, r.db, r.qb, userID)
}

func (r *LedgerRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	return getInventory(ctx, r.db, r.qb, userID)
}

// GetAchievements returns a user's grants, oldest first
func (r *LedgerRepository) GetAchievements(ctx context.Context, userID string) ([]domain.AchievementGrant, error) {
	sql, args, err := r.qb.Achievements(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAchievements, err)
	}
	defer rows.Close()

	var grants []domain.AchievementGrant
	for rows.Next() {
		g := domain.AchievementGrant{UserID: userID}
		var id string
		if err := rows.Scan(&id, &g.GrantedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAchievements, err)
		}
		g.AchievementID = domain.AchievementID(id)
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAchievements, err)
	}
	return grants, nil
}

// ListUsers pages through users in creation order
func (r *LedgerRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	sql, args, err := r.qb.ListUsers(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUsers, err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUsers, err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUsers, err)
	}
	return users, nil
}

// Leaderboard returns the top users by pulls
func (r *LedgerRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	sql, args, err := r.qb.Leaderboard(limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Pulls); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}
	return entries, nil
}

func (r *LedgerRepository) CountUsers(ctx context.Context) (int, error) {
	return count(ctx, r.db, r.qb, "users")
}

// ResetAll wipes users and inventory in one transaction
func (r *LedgerRepository) ResetAll(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, SQLDeleteInventory); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToResetData, err)
	}
	if _, err := tx.Exec(ctx, SQLDeleteUsers); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToResetData, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Pulls, &u.Coins, &u.LastDaily, &u.LastWeekly, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func getUser(ctx context.Context, q querier, qb query.Builder, userID string) (*domain.User, error) {
	sql, args, err := qb.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return u, nil
}

func getInventory(ctx context.Context, q querier, qb query.Builder, userID string) ([]domain.InventoryEntry, error) {
	sql, args, err := qb.Inventory(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		var rarity string
		if err := rows.Scan(&e.ItemName, &rarity, &e.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
		}
		e.Rarity = domain.Rarity(rarity)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return entries, nil
}

// ledgerTx implements repository.LedgerTx over a locked pgx transaction
type ledgerTx struct {
	tx pgx.Tx
	qb query.Builder
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *ledgerTx) EnsureUser(ctx context.Context, userID, username string) (*domain.User, error) {
	u, err := scanUser(t.tx.QueryRow(ctx, SQLEnsureUser, userID, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEnsureUser, err)
	}
	return u, nil
}

func (t *ledgerTx) IncrementPulls(ctx context.Context, userID string, delta int64) (int64, error) {
	var pulls int64
	if err := t.tx.QueryRow(ctx, SQLIncrementPulls, userID, delta).Scan(&pulls); err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: pulls cannot go below zero", domain.ErrInvalidAmount)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToIncrementPulls, err)
	}
	return pulls, nil
}

func (t *ledgerTx) AddCoins(ctx context.Context, userID string, delta int64) (int64, error) {
	var coins int64
	if err := t.tx.QueryRow(ctx, SQLAddCoins, userID, delta).Scan(&coins); err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrInsufficientCoins, userID)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToAddCoins, err)
	}
	return coins, nil
}

func (t *ledgerTx) SetPulls(ctx context.Context, userID string, value int64) error {
	if _, err := t.tx.Exec(ctx, SQLSetPulls, userID, value); err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: pulls cannot be negative", domain.ErrInvalidAmount)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetPulls, err)
	}
	return nil
}

func (t *ledgerTx) SetLastDaily(ctx context.Context, userID, dayKey string) error {
	if _, err := t.tx.Exec(ctx, SQLSetLastDaily, userID, dayKey); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetClaimKey, err)
	}
	return nil
}

func (t *ledgerTx) SetLastWeekly(ctx context.Context, userID, weekKey string) error {
	if _, err := t.tx.Exec(ctx, SQLSetLastWeekly, userID, weekKey); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetClaimKey, err)
	}
	return nil
}

func (t *ledgerTx) AddInventory(ctx context.Context, userID, itemName string, rarity domain.Rarity, amount int64) (int64, error) {
	var total int64
	err := t.tx.QueryRow(ctx, SQLAddInventory,
		userID, domain.NameKey(itemName), itemName, string(rarity), amount).Scan(&total)
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToAddInventory, err)
	}
	return total, nil
}

func (t *ledgerTx) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	return getInventory(ctx, t.tx, t.qb, userID)
}

func (t *ledgerTx) GetAchievementIDs(ctx context.Context, userID string) (map[domain.AchievementID]bool, error) {
	rows, err := t.tx.Query(ctx, SQLSelectAchievementIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAchievements, err)
	}
	defer rows.Close()

	ids := make(map[domain.AchievementID]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAchievements, err)
		}
		ids[domain.AchievementID(id)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAchievements, err)
	}
	return ids, nil
}

func (t *ledgerTx) InsertAchievement(ctx context.Context, userID string, id domain.AchievementID, grantedAt time.Time) (bool, error) {
	tag, err := t.tx.Exec(ctx, SQLInsertAchievement, userID, string(id), grantedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertAchievement, err)
	}
	return tag.RowsAffected() == 1, nil
}
