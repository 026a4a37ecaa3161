package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Storage owns the process-wide PostgreSQL connection pool. It is created at
// startup, connected once and closed from a deferred finalizer at shutdown.
type Storage struct {
	ctx    context.Context
	logger *zap.Logger
	pool   *pgxpool.Pool
}

func NewStorage(ctx context.Context, l *zap.Logger) *Storage {
	return &Storage{ctx: ctx, logger: l}
}

func (s *Storage) Connect(dsn string) error {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return err
	}
	// Recycle idle connections and validate pooled connections periodically
	// to tolerate stale backend connections.
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = time.Minute

	s.pool, err = pgxpool.ConnectConfig(s.ctx, config)
	return err
}

// Begin runs fn inside a transaction: committed when fn returns nil, rolled
// back otherwise. Every write in this codebase goes through here.
func (s *Storage) Begin(ctx context.Context, fn func(pgx.Tx) error) error {
	return s.pool.BeginFunc(ctx, fn)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}
