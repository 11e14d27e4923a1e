package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/provider"
)

// Store is a lookup cache backed by SQLite. Results are kept as JSON.
type Store struct {
	pool *sqlitex.Pool
}

// Open opens (or creates) the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	pool, err := NewPool(path)
	if err != nil {
		return nil, err
	}
	if err := CreateSchema(ctx, pool); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases all connections.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Get returns the cached result for word, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, word string) (*provider.CachedResult, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: take conn: %w", err)
	}
	defer s.pool.Put(conn)

	var (
		payload   string
		fetchedAt int64
		found     bool
	)
	err = sqlitex.Execute(conn, "SELECT payload, fetched_at FROM lookup_cache WHERE word = ? LIMIT 1", &sqlitex.ExecOptions{
		Args: []any{word},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			payload = stmt.ColumnText(0)
			fetchedAt = stmt.ColumnInt64(1)
			found = true
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %q: %w", word, err)
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	var result provider.DictionaryResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("sqlite: decode %q: %w", word, err)
	}

	return &provider.CachedResult{
		Result:    &result,
		FetchedAt: time.UnixMilli(fetchedAt).UTC(),
	}, nil
}

// Put inserts or replaces the cached result for word.
func (s *Store) Put(ctx context.Context, word string, result *provider.DictionaryResult, fetchedAt time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("sqlite: encode %q: %w", word, err)
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlite: take conn: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT INTO lookup_cache (word, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		&sqlitex.ExecOptions{
			Args: []any{word, string(payload), fetchedAt.UnixMilli()},
		})
	if err != nil {
		return fmt.Errorf("sqlite: put %q: %w", word, err)
	}
	return nil
}

// Count returns the number of cached words.
func (s *Store) Count(ctx context.Context) (int, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("sqlite: take conn: %w", err)
	}
	defer s.pool.Put(conn)

	n, err := sqlitex.ResultInt(conn.Prep("SELECT COUNT(*) FROM lookup_cache"))
	if err != nil {
		return 0, fmt.Errorf("sqlite: count: %w", err)
	}
	return n, nil
}

// Purge deletes entries fetched before cutoff and returns how many were removed.
func (s *Store) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("sqlite: take conn: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, "DELETE FROM lookup_cache WHERE fetched_at < ?", &sqlitex.ExecOptions{
		Args: []any{cutoff.UnixMilli()},
	})
	if err != nil {
		return 0, fmt.Errorf("sqlite: purge: %w", err)
	}
	return int64(conn.Changes()), nil
}
