// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface using pgx.
//
// Order table reads made inside Transact take row locks (SELECT ... FOR
// UPDATE), so concurrent group, ungroup and table changes touching the same
// tables wait for each other instead of racing.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yeongunheo/kitchenpos/internal/storage"
)

// Ensure PostgresStore implements storage.Store
var _ storage.Store = (*PostgresStore)(nil)

// querier is the subset of *pgxpool.Pool and pgx.Tx the repository needs.
type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// repo implements storage.Repository on top of the pool or an open
// transaction. locking is set inside Transact.
type repo struct {
	q       querier
	locking bool
}

// PostgresStore implements storage.Store using PostgreSQL.
type PostgresStore struct {
	*repo
	pool *pgxpool.Pool
}

// Options tune the connection pool.
type Options struct {
	MaxConns       int32
	ConnectRetries int
}

// New connects to databaseURL, retrying while the server comes up, and runs
// migrations.
func New(ctx context.Context, databaseURL string, opts Options) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	retries := opts.ConnectRetries
	if retries <= 0 {
		retries = 1
	}

	var pool *pgxpool.Pool
	for i := 0; i < retries; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				break
			}
			pool.Close()
		}

		if i < retries-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			slog.Warn("Database not reachable, retrying", "attempt", i+1, "wait", wait, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", retries, err)
	}

	s := &PostgresStore{repo: &repo{q: pool}, pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Transact runs fn inside a READ COMMITTED transaction in which order table
// reads lock their rows.
func (s *PostgresStore) Transact(ctx context.Context, fn func(ctx context.Context, r storage.Repository) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &repo{q: tx, locking: true}); err != nil {
		return translate(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translate(err))
	}
	return nil
}

// atomically runs fn in a transaction, or in a savepoint when the repo is
// already transactional.
func (r *repo) atomically(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, r.q, fn)
}

// forUpdate returns the row locking clause for reads inside Transact.
func (r *repo) forUpdate() string {
	if r.locking {
		return " FOR UPDATE"
	}
	return ""
}

// SQLSTATE codes that mean the transaction lost a race and may be retried.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
)

// translate maps retryable PostgreSQL failures to storage.ErrConflict.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case serializationFailure, deadlockDetected, lockNotAvailable:
			return fmt.Errorf("%w: %s", storage.ErrConflict, pgErr.Message)
		}
	}
	return err
}
