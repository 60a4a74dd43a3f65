package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

type stubTx struct {
	rollbackErr error
	rollbacks   int
}

func (s *stubTx) Commit(context.Context) error { return nil }

func (s *stubTx) Rollback(context.Context) error {
	s.rollbacks++
	return s.rollbackErr
}

func TestSafeRollback(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"clean rollback", nil, false},
		{"already committed sql tx", sql.ErrTxDone, false},
		{"already committed store tx", errors.New(domain.ErrMsgTxClosed), false},
		{"wrapped tx done", errors.Join(errors.New("rollback"), sql.ErrTxDone), false},
		{"connection lost", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := slog.Default()
			t.Cleanup(func() { slog.SetDefault(prev) })
			var buf bytes.Buffer
			logger.InitLoggerWithWriter(logger.NewConfig("debug", "json", "test", "dev", "test", false), &buf)
			ctx := context.Background()

			tx := &stubTx{rollbackErr: tt.err}
			SafeRollback(ctx, tx)

			assert.Equal(t, 1, tx.rollbacks)
			assert.Equal(t, tt.wantLog, bytes.Contains(buf.Bytes(), []byte("Failed to rollback transaction")))
		})
	}
}
