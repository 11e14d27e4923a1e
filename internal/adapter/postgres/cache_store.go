package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/provider"
)

const cacheTable = "lookup_cache"

// CacheStore is a lookup cache backed by the lookup_cache table.
type CacheStore struct {
	q  Querier
	sb squirrel.StatementBuilderType
}

// NewCacheStore creates a cache store on q (usually a *pgxpool.Pool).
func NewCacheStore(q Querier) *CacheStore {
	return &CacheStore{
		q:  q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the cached result for word, or domain.ErrNotFound.
func (s *CacheStore) Get(ctx context.Context, word string) (*provider.CachedResult, error) {
	query, args, err := s.sb.
		Select("payload", "fetched_at").
		From(cacheTable).
		Where(squirrel.Eq{"word": word}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var (
		payload   []byte
		fetchedAt time.Time
	)
	if err := s.q.QueryRow(ctx, query, args...).Scan(&payload, &fetchedAt); err != nil {
		return nil, mapError(err, cacheTable, word)
	}

	var result provider.DictionaryResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%s %q: decode payload: %w", cacheTable, word, err)
	}

	return &provider.CachedResult{Result: &result, FetchedAt: fetchedAt}, nil
}

// Put inserts or replaces the cached result for word.
func (s *CacheStore) Put(ctx context.Context, word string, result *provider.DictionaryResult, fetchedAt time.Time) error {
	if word == "" {
		return domain.NewValidationError("word", "required")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%s %q: encode payload: %w", cacheTable, word, err)
	}

	query, args, err := s.sb.
		Insert(cacheTable).
		Columns("word", "payload", "fetched_at").
		Values(word, string(payload), fetchedAt).
		Suffix("ON CONFLICT (word) DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, cacheTable, word)
	}
	return nil
}

// Count returns the number of cached words.
func (s *CacheStore) Count(ctx context.Context) (int, error) {
	query, args, err := s.sb.
		Select("COUNT(*)").
		From(cacheTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := s.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, cacheTable, "")
	}
	return n, nil
}

// Purge deletes entries fetched before cutoff and returns how many were removed.
func (s *CacheStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := s.sb.
		Delete(cacheTable).
		Where(squirrel.Lt{"fetched_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, cacheTable, "")
	}
	return tag.RowsAffected(), nil
}
