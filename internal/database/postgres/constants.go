package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeCheckViolation is raised when a counter would go negative
	PgErrorCodeCheckViolation = "23514"
)

// Advisory lock hashing
const (
	// LockNamespace prefixes user ids so ledger locks never collide with other advisory lock users
	LockNamespace = "ledger"

	// HashSeparator is the separator used when combining namespace and userID for advisory lock hashing
	HashSeparator = ":"

	// HashMaskPositiveInt64 masks the MSB so lock keys are positive int64 values
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	SQLInsertItem = `
		INSERT INTO items (item_key, item_name, rarity, description, image)
		VALUES ($1, $2, $3, $4, $5)`

	SQLDeleteItem = `DELETE FROM items WHERE item_key = $1`

	SQLEnsureUser = `
		INSERT INTO users (user_id, username)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET username = CASE WHEN EXCLUDED.username <> '' THEN EXCLUDED.username ELSE users.username END
		RETURNING user_id, username, pulls, coins, COALESCE(last_daily, ''), COALESCE(last_weekly, ''), created_at`

	SQLIncrementPulls = `
		INSERT INTO users (user_id, pulls)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET pulls = users.pulls + EXCLUDED.pulls
		RETURNING pulls`

	SQLAddCoins = `
		INSERT INTO users (user_id, coins)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET coins = users.coins + EXCLUDED.coins
		RETURNING coins`

	SQLSetPulls = `
		INSERT INTO users (user_id, pulls)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET pulls = EXCLUDED.pulls`

	SQLSetLastDaily  = `UPDATE users SET last_daily = $2 WHERE user_id = $1`
	SQLSetLastWeekly = `UPDATE users SET last_weekly = $2 WHERE user_id = $1`

	SQLAddInventory = `
		INSERT INTO inventory (user_id, item_key, item_name, rarity, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, item_key) DO UPDATE SET amount = inventory.amount + EXCLUDED.amount
		RETURNING amount`

	SQLSelectAchievementIDs = `SELECT achievement FROM achievements WHERE user_id = $1`

	SQLInsertAchievement = `
		INSERT INTO achievements (user_id, achievement, granted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement) DO NOTHING`

	SQLDeleteInventory = `DELETE FROM inventory`
	SQLDeleteUsers     = `DELETE FROM users`
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgAcquireLockFailed         = "failed to acquire advisory lock"
	ErrMsgFailedToBuildQuery        = "failed to build query"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToInsertItem = "failed to insert item"
	ErrMsgFailedToDeleteItem = "failed to delete item"
	ErrMsgFailedToUpdateItem = "failed to update item"
	ErrMsgFailedToGetItem    = "failed to get item"
	ErrMsgFailedToListItems  = "failed to list items"
	ErrMsgFailedToCountRows  = "failed to count rows"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToEnsureUser        = "failed to ensure user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToListUsers         = "failed to list users"
	ErrMsgFailedToIncrementPulls    = "failed to increment pulls"
	ErrMsgFailedToAddCoins          = "failed to add coins"
	ErrMsgFailedToSetPulls          = "failed to set pulls"
	ErrMsgFailedToSetClaimKey       = "failed to set claim key"
	ErrMsgFailedToAddInventory      = "failed to add inventory"
	ErrMsgFailedToGetInventory      = "failed to get inventory"
	ErrMsgFailedToGetAchievements   = "failed to get achievements"
	ErrMsgFailedToInsertAchievement = "failed to insert achievement"
	ErrMsgFailedToGetLeaderboard    = "failed to get leaderboard"
	ErrMsgFailedToResetData         = "failed to reset data"
)
