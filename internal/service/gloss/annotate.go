package gloss

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/render"
	"github.com/heartmarshall/jpgloss/internal/vocab"
)

// UnknownMode controls how vocabulary words without a meaning are emitted.
type UnknownMode string

const (
	// UnknownPlain emits the word unannotated.
	UnknownPlain UnknownMode = "plain"
	// UnknownMark annotates the word with the unknown marker.
	UnknownMark UnknownMode = "mark"
)

// ParseUnknownMode parses "plain" or "mark". Empty means plain.
func ParseUnknownMode(s string) (UnknownMode, error) {
	switch UnknownMode(s) {
	case "", UnknownPlain:
		return UnknownPlain, nil
	case UnknownMark:
		return UnknownMark, nil
	}
	return "", fmt.Errorf("unknown mode %q: %w", s, domain.ErrValidation)
}

// DefaultUnknownMarker is the meaning shown for unresolved words in mark mode.
const DefaultUnknownMarker = "?"

// Annotate folds the original token sequence into output fragments in order.
// Tokens outside the vocabulary pass through unchanged.
func Annotate(tokens []string, set vocab.Set, g domain.Glossary, unknown UnknownMode, marker string) []render.Fragment {
	frags := make([]render.Fragment, 0, len(tokens))
	for _, tok := range tokens {
		if !set.Contains(tok) {
			frags = append(frags, render.Fragment{Token: tok})
			continue
		}
		if m, ok := g.Meaning(tok); ok {
			frags = append(frags, render.Fragment{Token: tok, Kind: render.Annotated, Meaning: singleLine(m)})
			continue
		}
		if unknown == UnknownMark {
			frags = append(frags, render.Fragment{Token: tok, Kind: render.Unknown, Meaning: marker})
			continue
		}
		frags = append(frags, render.Fragment{Token: tok})
	}
	return frags
}

func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
