package gloss

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/provider"
)

// ProgressFunc is called with the number of finished lookups and the total.
// It is called once with done == 0 before any lookup starts, then once per
// finished word, possibly from several goroutines.
type ProgressFunc func(done, total int)

// Resolver looks up every vocabulary word over a bounded worker pool.
type Resolver struct {
	dict        provider.DictionaryProvider
	concurrency int
	log         *slog.Logger
}

// NewResolver creates a Resolver running at most concurrency lookups at once.
// A concurrency below 1 is treated as 1.
func NewResolver(logger *slog.Logger, dict provider.DictionaryProvider, concurrency int) *Resolver {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Resolver{
		dict:        dict,
		concurrency: concurrency,
		log:         logger,
	}
}

// Resolve looks up each word once and returns the merged glossary. A failed
// lookup is recorded for its word and never affects the others. Once ctx is
// done, words not yet looked up are recorded as failed.
func (r *Resolver) Resolve(ctx context.Context, words []string, progress ProgressFunc) domain.Glossary {
	total := len(words)
	if progress != nil {
		progress(0, total)
	}

	// Each task writes only its own slot; slots are merged after Wait.
	results := make([]domain.Lookup, total)
	var done atomic.Int64

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, word := range words {
		g.Go(func() error {
			results[i] = r.lookup(ctx, word)
			n := done.Add(1)
			if progress != nil {
				progress(int(n), total)
			}
			return nil
		})
	}
	_ = g.Wait()

	return domain.NewGlossary(results)
}

func (r *Resolver) lookup(ctx context.Context, word string) domain.Lookup {
	if err := ctx.Err(); err != nil {
		return domain.Failed(word, err)
	}

	result, err := r.dict.FetchEntry(ctx, word)
	if err != nil {
		r.log.WarnContext(ctx, "lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return domain.Failed(word, err)
	}
	if !result.HasMeaning() {
		r.log.DebugContext(ctx, "word not found", slog.String("word", word))
		return domain.NotFound(word)
	}
	return domain.Found(word, result.ToEntry())
}
