// Package gloss annotates Japanese text with English meanings.
package gloss

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/provider"
	"github.com/heartmarshall/jpgloss/internal/render"
	"github.com/heartmarshall/jpgloss/internal/vocab"
)

type segmenter interface {
	Segment(ctx context.Context, text string) ([]string, error)
}

// analyzer is implemented by segmenters that also annotate each segment.
type analyzer interface {
	Analyze(ctx context.Context, text string) ([]domain.Morpheme, error)
}

// Options configures a Service.
type Options struct {
	Filter        vocab.Filter
	Concurrency   int
	Unknown       UnknownMode
	UnknownMarker string
	Renderer      render.Renderer
	Progress      ProgressFunc
}

// Result is the outcome of one annotation run.
type Result struct {
	Tokens     []string
	Morphemes  []domain.Morpheme
	Vocabulary vocab.Set
	Glossary   domain.Glossary
	Fragments  []render.Fragment
	Output     string
}

// Service runs the pipeline: segment, build the vocabulary, resolve meanings
// and annotate the original token sequence.
type Service struct {
	log      *slog.Logger
	seg      segmenter
	resolver *Resolver
	opts     Options
}

// NewService creates a gloss service.
func NewService(logger *slog.Logger, seg segmenter, dict provider.DictionaryProvider, opts Options) *Service {
	if opts.Renderer == nil {
		opts.Renderer = render.Bracket{}
	}
	if opts.Unknown == "" {
		opts.Unknown = UnknownPlain
	}
	if opts.UnknownMarker == "" {
		opts.UnknownMarker = DefaultUnknownMarker
	}
	log := logger.With("service", "gloss")
	return &Service{
		log:      log,
		seg:      seg,
		resolver: NewResolver(log, dict, opts.Concurrency),
		opts:     opts,
	}
}

// Annotate annotates text. Lookup failures are recorded in the glossary and
// never returned as errors; only segmentation errors are.
func (s *Service) Annotate(ctx context.Context, text string) (*Result, error) {
	start := time.Now()

	morphemes, err := s.segment(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("gloss: segment: %w", err)
	}
	tokens := domain.Surfaces(morphemes)

	set := vocab.Build(tokens, s.opts.Filter)
	g := s.resolver.Resolve(ctx, set.Words(), s.opts.Progress)
	frags := Annotate(tokens, set, g, s.opts.Unknown, s.opts.UnknownMarker)

	res := &Result{
		Tokens:     tokens,
		Morphemes:  morphemes,
		Vocabulary: set,
		Glossary:   g,
		Fragments:  frags,
		Output:     s.opts.Renderer.Render(frags),
	}

	counts := g.Counts()
	s.log.InfoContext(ctx, "text annotated",
		slog.Int("tokens", len(tokens)),
		slog.Int("vocabulary", set.Len()),
		slog.Int("found", counts[domain.StatusFound]),
		slog.Int("not_found", counts[domain.StatusNotFound]),
		slog.Int("failed", counts[domain.StatusFailed]),
		slog.Duration("duration", time.Since(start)),
	)

	return res, nil
}

// segment prefers the segmenter's annotated output when it has one.
func (s *Service) segment(ctx context.Context, text string) ([]domain.Morpheme, error) {
	if a, ok := s.seg.(analyzer); ok {
		return a.Analyze(ctx, text)
	}
	tokens, err := s.seg.Segment(ctx, text)
	if err != nil {
		return nil, err
	}
	return domain.SurfaceMorphemes(tokens), nil
}
