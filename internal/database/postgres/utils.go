package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// hashUserKey creates a consistent int64 hash from a user id for advisory locking
func hashUserKey(userID string) int64 {
	h := sha256.Sum256([]byte(LockNamespace + HashSeparator + userID))
	// Use first 8 bytes as int64, masking MSB to ensure positive value
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error) bool {
	return hasPgCode(err, PgErrorCodeUniqueViolation)
}

func isCheckViolation(err error) bool {
	return hasPgCode(err, PgErrorCodeCheckViolation)
}
