package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/jpgloss/internal/adapter/postgres"
	"github.com/heartmarshall/jpgloss/internal/adapter/postgres/migrations"
	"github.com/heartmarshall/jpgloss/internal/adapter/provider/chain"
	"github.com/heartmarshall/jpgloss/internal/adapter/provider/glossary"
	"github.com/heartmarshall/jpgloss/internal/adapter/provider/jisho"
	"github.com/heartmarshall/jpgloss/internal/adapter/segmenter"
	"github.com/heartmarshall/jpgloss/internal/adapter/sqlite"
	"github.com/heartmarshall/jpgloss/internal/config"
	"github.com/heartmarshall/jpgloss/internal/provider"
	"github.com/heartmarshall/jpgloss/internal/render"
	"github.com/heartmarshall/jpgloss/internal/service/gloss"
	"github.com/heartmarshall/jpgloss/internal/service/lookup"
	"github.com/heartmarshall/jpgloss/internal/vocab"
)

// ErrCacheDisabled is returned by cache maintenance when cache.driver is none.
var ErrCacheDisabled = errors.New("cache is disabled")

type cacheStore interface {
	Get(ctx context.Context, word string) (*provider.CachedResult, error)
	Put(ctx context.Context, word string, result *provider.DictionaryResult, fetchedAt time.Time) error
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
}

// Pipeline is the wired annotation pipeline together with the resources it owns.
type Pipeline struct {
	log     *slog.Logger
	service *gloss.Service
	cache   *lookup.Service
	store   cacheStore
	format  string
	page    render.Page
	closers []func()
}

// Build wires the pipeline from cfg. progress may be nil. Call Close when done.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, progress gloss.ProgressFunc) (*Pipeline, error) {
	p := &Pipeline{
		log:    logger,
		format: cfg.Output.Format,
		page:   render.Page{Title: cfg.Output.Title, Stylesheet: cfg.Output.Stylesheet},
	}

	seg, err := segmenter.New(cfg.Tokenizer, logger)
	if err != nil {
		return nil, err
	}

	mode, err := vocab.ParseMode(cfg.Filter.Mode)
	if err != nil {
		return nil, err
	}

	unknown, err := gloss.ParseUnknownMode(cfg.Output.Unknown)
	if err != nil {
		return nil, err
	}

	dict, err := newDictionary(ctx, cfg.Dictionary, logger)
	if err != nil {
		return nil, err
	}

	if err := p.openCache(ctx, cfg.Cache); err != nil {
		p.Close()
		return nil, err
	}
	if p.store != nil {
		p.cache = lookup.NewService(logger, p.store, dict, cfg.Cache.TTL)
		dict = p.cache
	}

	p.service = gloss.NewService(logger, seg, dict, gloss.Options{
		Filter:        vocab.NewFilter(mode),
		Concurrency:   cfg.Dictionary.Concurrency,
		Unknown:       unknown,
		UnknownMarker: cfg.Output.UnknownMarker,
		Renderer:      rendererFor(cfg.Output.Format),
		Progress:      progress,
	})

	attrs := []any{
		slog.String("provider", cfg.Dictionary.Provider),
		slog.String("cache", cfg.Cache.Driver),
		slog.String("filter", string(mode)),
		slog.String("format", cfg.Output.Format),
	}
	if p.store != nil {
		if n, err := p.store.Count(ctx); err == nil {
			attrs = append(attrs, slog.Int("cached_entries", n))
		} else {
			logger.WarnContext(ctx, "count cached entries", slog.String("error", err.Error()))
		}
	}
	logger.DebugContext(ctx, "pipeline ready", attrs...)

	return p, nil
}

// Run annotates text and writes it to w in the configured format.
func (p *Pipeline) Run(ctx context.Context, text string, w io.Writer) (*gloss.Result, error) {
	res, err := p.service.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}

	switch p.format {
	case "html":
		err = render.Document(w, p.page, res.Output)
	case "json":
		err = render.WriteJSON(w, render.NewReport(res.Output, res.Morphemes, res.Glossary))
	default:
		_, err = io.WriteString(w, res.Output)
	}
	if err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	if p.cache != nil {
		st := p.cache.Stats()
		p.log.DebugContext(ctx, "cache stats",
			slog.Int64("hits", st.Hits),
			slog.Int64("misses", st.Misses),
			slog.Int64("writes", st.Writes),
		)
	}

	return res, nil
}

// PurgeCache removes cache entries older than age.
func (p *Pipeline) PurgeCache(ctx context.Context, age time.Duration) (int64, error) {
	if p.store == nil {
		return 0, ErrCacheDisabled
	}
	return p.store.Purge(ctx, time.Now().Add(-age))
}

// Close releases the cache connections.
func (p *Pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
	p.closers = nil
}

func (p *Pipeline) openCache(ctx context.Context, cfg config.CacheConfig) error {
	switch cfg.Driver {
	case config.CacheSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		p.store = store
		p.closers = append(p.closers, func() {
			if err := store.Close(); err != nil {
				p.log.Warn("close sqlite cache", slog.String("error", err.Error()))
			}
		})

	case config.CachePostgres:
		if _, err := migrations.Up(ctx, cfg.Postgres.DSN); err != nil {
			return err
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		p.store = postgres.NewCacheStore(pool)
		p.closers = append(p.closers, pool.Close)
	}
	return nil
}

func newDictionary(ctx context.Context, cfg config.DictionaryConfig, logger *slog.Logger) (provider.DictionaryProvider, error) {
	switch cfg.Provider {
	case config.ProviderGlossary:
		return loadGlossary(ctx, cfg.GlossaryPath, logger)

	case config.ProviderChain:
		g, err := loadGlossary(ctx, cfg.GlossaryPath, logger)
		if err != nil {
			return nil, err
		}
		return chain.New(logger,
			chain.Link{Name: config.ProviderGlossary, Provider: g},
			chain.Link{Name: config.ProviderJisho, Provider: jisho.NewProvider(cfg, logger)},
		), nil

	default:
		return jisho.NewProvider(cfg, logger), nil
	}
}

func loadGlossary(ctx context.Context, path string, logger *slog.Logger) (*glossary.Provider, error) {
	g, err := glossary.Load(path)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "glossary loaded",
		slog.String("path", path),
		slog.Int("glossary_entries", g.Len()),
	)
	return g, nil
}

func rendererFor(format string) render.Renderer {
	if format == "html" {
		return render.Markup{}
	}
	return render.Bracket{}
}
