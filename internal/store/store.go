package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrSlotTaken = errors.New("slot already booked")
)

// StorageError carries the failing operation and the driver error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "store: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

//go:embed migrations/001_init.sql
var schema string

// Store is the only component that reads or writes appointments and addresses.
// Each call borrows one pooled connection for a single statement.
type Store struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

// New wraps pool. A zero acquireTimeout waits for a free connection as long
// as the caller's context allows.
func New(pool *pgxpool.Pool, acquireTimeout time.Duration) *Store {
	return &Store{pool: pool, acquireTimeout: acquireTimeout}
}

func (s *Store) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if s.acquireTimeout <= 0 {
		return s.pool.Acquire(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()
	return s.pool.Acquire(actx)
}

// withConn runs fn on a borrowed connection and always gives it back.
func (s *Store) withConn(ctx context.Context, op string, fn func(*pgxpool.Conn) error) error {
	conn, err := s.acquire(ctx)
	if err != nil {
		return &StorageError{Op: op, Err: fmt.Errorf("acquire: %w", err)}
	}
	defer conn.Release()

	if err := fn(conn); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &StorageError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, "ping", func(c *pgxpool.Conn) error {
		return c.Ping(ctx)
	})
}

// Migrate applies the embedded schema. Safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	return s.withConn(ctx, "migrate", func(c *pgxpool.Conn) error {
		_, err := c.Exec(ctx, schema)
		return err
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
