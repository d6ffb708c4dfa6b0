// Package postgres provides a Sink backed by a PostgreSQL table, one row
// per stored object with the payload held as JSONB.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xraph/revrec/store"
)

// compile-time interface check
var _ store.Sink = (*Store)(nil)

// Store implements store.Sink on a PostgreSQL table.
type Store struct {
	pool *pgxpool.Pool

	mu     sync.Mutex
	closed bool
}

// New connects to PostgreSQL and returns a sink.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("revrec/postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("revrec/postgres: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool, for callers that manage their own
// connection lifecycle.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the objects table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS revrec_objects (
			name         text PRIMARY KEY,
			resource     text NOT NULL,
			generated_at timestamptz NOT NULL,
			payload      jsonb NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("revrec/postgres: migrate: %w", err)
	}
	return nil
}

// Put implements store.Sink. Re-putting an object with the same logical
// name replaces it.
func (s *Store) Put(ctx context.Context, obj *store.Object) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return store.ErrClosed
	}

	payload, err := obj.Marshal()
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO revrec_objects (name, resource, generated_at, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET resource = EXCLUDED.resource,
		    generated_at = EXCLUDED.generated_at,
		    payload = EXCLUDED.payload`,
		obj.Name(), obj.Resource, obj.GeneratedAt.UTC(), payload)
	if err != nil {
		return fmt.Errorf("revrec/postgres: put %s: %w", obj.Name(), err)
	}
	return nil
}

// Get fetches the stored payload bytes for a logical name.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM revrec_objects WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("revrec/postgres: get %s: %w", name, err)
	}
	return payload, nil
}

// Close implements store.Sink.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.pool.Close()
	return nil
}
