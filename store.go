package burrow

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/burrowdb/burrow/fields"
	"github.com/burrowdb/burrow/internal/pg"
	"github.com/burrowdb/burrow/schema"
)

// Store is the main entry point for Burrow. It holds a PostgreSQL connection
// pool and provides access to document collections. Document bodies are
// serialized with the configured JSON backend; recorded timestamps are stored
// as microseconds since the epoch so they sort chronologically.
type Store struct {
	pool *pg.Pool
	be   backend
}

// New connects to PostgreSQL and returns a configured Store.
func New(ctx context.Context, connString string, opts ...Option) (*Store, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	body, err := fields.NewCompatStructField(cfg.structBackend, fields.WithCompression(cfg.compression))
	if err != nil {
		return nil, fmt.Errorf("burrow: %w", err)
	}

	pool, err := pg.NewPool(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("burrow: %w", err)
	}

	s := &Store{
		pool: pool,
		be: backend{
			exec:     pool,
			recorded: fields.NewTimestampField(),
			body:     body,
			schema:   schema.New(),
		},
	}
	return s, nil
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// DBExecutor returns the underlying database executor.
func (s *Store) DBExecutor() pg.Executor { return s.be.exec }

// PgxPool returns the underlying pgxpool.Pool for use with stdlib adapters.
func (s *Store) PgxPool() *pgxpool.Pool { return s.pool.PgxPool() }
