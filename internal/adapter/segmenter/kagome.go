// Package segmenter splits Japanese text into tokens with the kagome
// morphological analyzer.
package segmenter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/heartmarshall/jpgloss/internal/config"
	"github.com/heartmarshall/jpgloss/internal/domain"
)

// Kagome segments text with a kagome tokenizer. Safe for concurrent use.
type Kagome struct {
	t    *tokenizer.Tokenizer
	mode tokenizer.TokenizeMode
	log  *slog.Logger
}

// New builds a Kagome segmenter from the tokenizer config.
func New(cfg config.TokenizerConfig, logger *slog.Logger) (*Kagome, error) {
	d, err := systemDict(cfg.Dict)
	if err != nil {
		return nil, err
	}
	mode, err := tokenizeMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("segmenter: create tokenizer: %w", err)
	}

	return &Kagome{
		t:    t,
		mode: mode,
		log:  logger.With("adapter", "kagome"),
	}, nil
}

// Segment returns the ordered token surfaces of text. Concatenating the
// result always reproduces text exactly.
func (k *Kagome) Segment(ctx context.Context, text string) ([]string, error) {
	morphemes, err := k.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	return domain.Surfaces(morphemes), nil
}

// Analyze returns the ordered morphemes of text, including gap segments for
// any bytes the analyzer skipped. Gap segments have only Surface set.
func (k *Kagome) Analyze(ctx context.Context, text string) ([]domain.Morpheme, error) {
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	toks := k.t.Analyze(text, k.mode)
	out := make([]domain.Morpheme, 0, len(toks))

	cursor := 0
	gaps := 0
	for _, tok := range toks {
		if tok.Class == tokenizer.DUMMY || tok.Surface == "" {
			continue
		}
		start := tok.Position
		end := start + len(tok.Surface)
		if end <= cursor {
			continue
		}
		if start > cursor {
			out = append(out, domain.Morpheme{Surface: text[cursor:start]})
			gaps++
		}
		if start < cursor {
			// Overlapping segment: keep only the uncovered tail.
			out = append(out, domain.Morpheme{Surface: text[cursor:end]})
			cursor = end
			continue
		}
		out = append(out, toMorpheme(tok))
		cursor = end
	}
	if cursor < len(text) {
		out = append(out, domain.Morpheme{Surface: text[cursor:]})
		gaps++
	}

	k.log.DebugContext(ctx, "text segmented",
		slog.Int("bytes", len(text)),
		slog.Int("tokens", len(out)),
		slog.Int("gaps", gaps),
	)
	return out, nil
}

func toMorpheme(tok tokenizer.Token) domain.Morpheme {
	m := domain.Morpheme{Surface: tok.Surface}
	if base, ok := tok.BaseForm(); ok && base != "*" {
		m.BaseForm = base
	}
	if r, ok := tok.Reading(); ok && r != "*" {
		m.Reading = r
	}
	for _, p := range tok.POS() {
		if p != "" && p != "*" {
			m.POS = append(m.POS, p)
		}
	}
	return m
}

func systemDict(name string) (*dict.Dict, error) {
	switch strings.ToLower(name) {
	case "", "ipa":
		return ipa.Dict(), nil
	case "uni":
		return uni.Dict(), nil
	}
	return nil, fmt.Errorf("segmenter: unknown dictionary %q", name)
}

func tokenizeMode(name string) (tokenizer.TokenizeMode, error) {
	switch strings.ToLower(name) {
	case "", "normal":
		return tokenizer.Normal, nil
	case "search":
		return tokenizer.Search, nil
	case "extended":
		return tokenizer.Extended, nil
	}
	return tokenizer.Normal, fmt.Errorf("segmenter: unknown mode %q", name)
}
