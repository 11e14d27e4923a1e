// Package chain consults several dictionary providers in order.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/jpgloss/internal/provider"
)

// Link is one named provider in the chain.
type Link struct {
	Name     string
	Provider provider.DictionaryProvider
}

// Provider returns the first found result among its links. A failing link
// does not stop later links; failures are reported only when no link finds
// the word.
type Provider struct {
	links []Link
	log   *slog.Logger
}

// New creates a chain over links, consulted in the given order.
func New(logger *slog.Logger, links ...Link) *Provider {
	return &Provider{
		links: links,
		log:   logger.With("adapter", "chain"),
	}
}

// FetchEntry implements provider.DictionaryProvider.
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	var errs []error
	for _, l := range p.links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := l.Provider.FetchEntry(ctx, word)
		if err != nil {
			p.log.WarnContext(ctx, "chain link failed",
				slog.String("link", l.Name),
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", l.Name, err))
			continue
		}
		if result != nil {
			return result, nil
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("chain: %w", errors.Join(errs...))
	}
	return nil, nil
}
