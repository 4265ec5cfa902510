package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/go-api-signup/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewPool opens a bounded pgx pool. The pool holds at most PoolSize+MaxOverflow
// connections, keeps PoolSize warm, and recycles connections after PoolRecycle.
func NewPool(ctx context.Context, db config.Database, log *zap.Logger) (*pgxpool.Pool, error) {
	dsn, err := db.DSN()
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = db.MaxConns()
	poolCfg.MinConns = int32(min(db.PoolSize, int(poolCfg.MaxConns)))
	if db.PoolRecycle > 0 {
		poolCfg.MaxConnLifetime = db.PoolRecycle
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute
	poolCfg.ConnConfig.ConnectTimeout = 10 * time.Second

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("database pool ready",
		zap.String("host", db.Host),
		zap.String("database", db.Name),
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Int32("min_conns", poolCfg.MinConns),
		zap.Duration("max_conn_lifetime", poolCfg.MaxConnLifetime),
	)
	return pool, nil
}
