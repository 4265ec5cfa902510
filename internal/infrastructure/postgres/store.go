package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-api-signup/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store runs registration work inside transactions drawn from a pool.
type Store struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	log            *zap.Logger
}

func NewStore(pool *pgxpool.Pool, acquireTimeout time.Duration, log *zap.Logger) *Store {
	return &Store{pool: pool, acquireTimeout: acquireTimeout, log: log}
}

// InTx acquires one connection, runs fn inside a transaction on it and
// commits when fn returns nil. Any error or panic rolls back. The connection
// is released on every path.
func (s *Store) InTx(ctx context.Context, fn func(domain.AccountTx) error) (err error) {
	acquireCtx := ctx
	if s.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, s.acquireTimeout)
		defer cancel()
	}
	conn, err := s.pool.Acquire(acquireCtx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(tx)
			panic(p)
		}
		if err != nil {
			s.rollback(tx)
			return
		}
		if cErr := tx.Commit(ctx); cErr != nil {
			err = fmt.Errorf("commit transaction: %w", mapError(cErr))
		}
	}()

	return fn(&Queries{db: tx})
}

// rollback uses a fresh context so a cancelled request still releases its locks.
func (s *Store) rollback(tx pgx.Tx) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		s.log.Warn("rollback failed", zap.Error(err))
	}
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
