// Package lookup caches dictionary lookups in a persistent store.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/provider"
)

type cacheStore interface {
	Get(ctx context.Context, word string) (*provider.CachedResult, error)
	Put(ctx context.Context, word string, result *provider.DictionaryResult, fetchedAt time.Time) error
}

// Stats counts cache outcomes since the Service was created.
type Stats struct {
	Hits   int64
	Misses int64
	Writes int64
}

// Service wraps a dictionary provider with a get-or-fetch cache.
// It implements provider.DictionaryProvider.
type Service struct {
	log   *slog.Logger
	store cacheStore
	dict  provider.DictionaryProvider
	ttl   time.Duration
	now   func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
}

// NewService creates a caching lookup service. A ttl of 0 keeps entries forever.
func NewService(logger *slog.Logger, store cacheStore, dict provider.DictionaryProvider, ttl time.Duration) *Service {
	return &Service{
		log:   logger.With("service", "lookup"),
		store: store,
		dict:  dict,
		ttl:   ttl,
		now:   time.Now,
	}
}

// FetchEntry returns the cached result for word or fetches it from the
// provider. Found results are saved; not-found results are not. Store errors
// are logged and the provider is consulted anyway.
func (s *Service) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	// 1. Check the cache.
	cached, err := s.store.Get(ctx, word)
	switch {
	case err == nil && s.fresh(cached):
		s.hits.Add(1)
		s.log.DebugContext(ctx, "cache hit", slog.String("word", word))
		return cached.Result, nil
	case err == nil:
		s.log.DebugContext(ctx, "cache entry expired",
			slog.String("word", word),
			slog.Time("fetched_at", cached.FetchedAt),
		)
	case !errors.Is(err, domain.ErrNotFound):
		s.log.WarnContext(ctx, "cache read failed, falling back to provider",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
	}
	s.misses.Add(1)

	// 2. Fetch from the dictionary provider.
	result, err := s.dict.FetchEntry(ctx, word)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	// 3. Save (graceful degradation on error).
	if err := s.store.Put(ctx, word, result, s.now()); err != nil {
		s.log.WarnContext(ctx, "cache write failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return result, nil
	}
	s.writes.Add(1)

	return result, nil
}

// Stats returns a snapshot of the cache counters.
func (s *Service) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Writes: s.writes.Load(),
	}
}

func (s *Service) fresh(c *provider.CachedResult) bool {
	if c == nil || !c.Result.HasMeaning() {
		return false
	}
	if s.ttl <= 0 {
		return true
	}
	return s.now().Sub(c.FetchedAt) < s.ttl
}
