package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/concurrency"
	"github.com/osse101/TactasRNG_Go/internal/database/query"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// LedgerRepository implements repository.Ledger on SQLite.
// Per-user serialization comes from an in-process lock held for the life of each transaction.
type LedgerRepository struct {
	db    *sql.DB
	qb    query.Builder
	locks *concurrency.LockManager
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *sql.DB, locks *concurrency.LockManager) repository.Ledger {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &LedgerRepository{db: db, qb: query.SQLite(), locks: locks}
}

func (r *LedgerRepository) BeginUserTx(ctx context.Context, userID string) (repository.LedgerTx, error) {
	release := r.locks.Lock(userID)
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		release()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &ledgerTx{tx: tx, qb: r.qb, release: release}, nil
}

func (r *LedgerRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, r.db, r.qb, userID)
}

func (r *LedgerRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	return getInventory(ctx, r.db, r.qb, userID)
}

func (r *LedgerRepository) GetAchievements(ctx context.Context, userID string) ([]domain.AchievementGrant, error) {
	q, args, err := r.qb.Achievements(userID)
	if err != nil {
		return nil, fmt.Errorf("build achievements: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get achievements: %w", err)
	}
	defer rows.Close()

	var grants []domain.AchievementGrant
	for rows.Next() {
		var id string
		var grantedAt int64
		if err := rows.Scan(&id, &grantedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		grants = append(grants, domain.AchievementGrant{
			UserID:        userID,
			AchievementID: domain.AchievementID(id),
			GrantedAt:     fromMillis(grantedAt),
		})
	}
	return grants, rows.Err()
}

func (r *LedgerRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	q, args, err := r.qb.ListUsers(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("build list users: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *LedgerRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	q, args, err := r.qb.Leaderboard(limit)
	if err != nil {
		return nil, fmt.Errorf("build leaderboard: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Pulls); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *LedgerRepository) CountUsers(ctx context.Context) (int, error) {
	q, args, err := r.qb.Count("users")
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	return count(ctx, r.db, q, args)
}

func (r *LedgerRepository) ResetAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer safeRollback(ctx, tx)

	for _, stmt := range []string{`DELETE FROM inventory`, `DELETE FROM users`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset data: %w", err)
		}
	}
	return tx.Commit()
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var createdAt int64
	if err := row.Scan(&u.ID, &u.Username, &u.Pulls, &u.Coins, &u.LastDaily, &u.LastWeekly, &createdAt); err != nil {
		return nil, err
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}

func getUser(ctx context.Context, q queryer, qb query.Builder, userID string) (*domain.User, error) {
	stmt, args, err := qb.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("build get user: %w", err)
	}
	u, err := scanUser(q.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func getInventory(ctx context.Context, q queryer, qb query.Builder, userID string) ([]domain.InventoryEntry, error) {
	stmt, args, err := qb.Inventory(userID)
	if err != nil {
		return nil, fmt.Errorf("build inventory: %w", err)
	}
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		var rarity string
		if err := rows.Scan(&e.ItemName, &rarity, &e.Amount); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		e.Rarity = domain.Rarity(rarity)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type ledgerTx struct {
	tx      *sql.Tx
	qb      query.Builder
	release func()
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	defer t.release()
	return t.tx.Commit()
}

// Rollback reports domain.ErrMsgTxClosed text for an already-finished transaction
func (t *ledgerTx) Rollback(ctx context.Context) error {
	defer t.release()
	if err := t.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return errors.New(domain.ErrMsgTxClosed)
		}
		return err
	}
	return nil
}

func (t *ledgerTx) EnsureUser(ctx context.Context, userID, username string) (*domain.User, error) {
	row := t.tx.QueryRowContext(ctx,
		`INSERT INTO users (user_id, username, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE
		 SET username = CASE WHEN excluded.username <> '' THEN excluded.username ELSE users.username END
		 RETURNING user_id, username, pulls, coins, COALESCE(last_daily, ''), COALESCE(last_weekly, ''), created_at`,
		userID, username, toMillis(time.Now()))
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return u, nil
}

func (t *ledgerTx) IncrementPulls(ctx context.Context, userID string, delta int64) (int64, error) {
	var pulls int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO users (user_id, pulls, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET pulls = users.pulls + excluded.pulls
		 RETURNING pulls`,
		userID, delta, toMillis(time.Now())).Scan(&pulls)
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: pulls cannot go below zero", domain.ErrInvalidAmount)
		}
		return 0, fmt.Errorf("increment pulls: %w", err)
	}
	return pulls, nil
}

func (t *ledgerTx) AddCoins(ctx context.Context, userID string, delta int64) (int64, error) {
	var coins int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO users (user_id, coins, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET coins = users.coins + excluded.coins
		 RETURNING coins`,
		userID, delta, toMillis(time.Now())).Scan(&coins)
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrInsufficientCoins, userID)
		}
		return 0, fmt.Errorf("add coins: %w", err)
	}
	return coins, nil
}

func (t *ledgerTx) SetPulls(ctx context.Context, userID string, value int64) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO users (user_id, pulls, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET pulls = excluded.pulls`,
		userID, value, toMillis(time.Now()))
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: pulls cannot be negative", domain.ErrInvalidAmount)
		}
		return fmt.Errorf("set pulls: %w", err)
	}
	return nil
}

func (t *ledgerTx) SetLastDaily(ctx context.Context, userID, dayKey string) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE users SET last_daily = ? WHERE user_id = ?`, dayKey, userID); err != nil {
		return fmt.Errorf("set last daily: %w", err)
	}
	return nil
}

func (t *ledgerTx) SetLastWeekly(ctx context.Context, userID, weekKey string) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE users SET last_weekly = ? WHERE user_id = ?`, weekKey, userID); err != nil {
		return fmt.Errorf("set last weekly: %w", err)
	}
	return nil
}

func (t *ledgerTx) AddInventory(ctx context.Context, userID, itemName string, rarity domain.Rarity, amount int64) (int64, error) {
	var total int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO inventory (user_id, item_key, item_name, rarity, amount, acquired_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, item_key) DO UPDATE SET amount = inventory.amount + excluded.amount
		 RETURNING amount`,
		userID, domain.NameKey(itemName), itemName, string(rarity), amount, toMillis(time.Now())).Scan(&total)
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
		}
		return 0, fmt.Errorf("add inventory: %w", err)
	}
	return total, nil
}

func (t *ledgerTx) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	return getInventory(ctx, t.tx, t.qb, userID)
}

func (t *ledgerTx) GetAchievementIDs(ctx context.Context, userID string) (map[domain.AchievementID]bool, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT achievement FROM achievements WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("get achievement ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[domain.AchievementID]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan achievement id: %w", err)
		}
		ids[domain.AchievementID(id)] = true
	}
	return ids, rows.Err()
}

func (t *ledgerTx) InsertAchievement(ctx context.Context, userID string, id domain.AchievementID, grantedAt time.Time) (bool, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO achievements (user_id, achievement, granted_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, achievement) DO NOTHING`,
		userID, string(id), toMillis(grantedAt))
	if err != nil {
		return false, fmt.Errorf("insert achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert achievement: %w", err)
	}
	return n == 1, nil
}

var _ repository.Ledger = (*LedgerRepository)(nil)
