// Package vocab decides which tokens are Japanese vocabulary worth looking up
// and collects them into a lookup set.
package vocab

import (
	"fmt"
	"strings"
	"unicode"
)

// Mode selects the script rule applied on top of the word-character rule.
type Mode string

const (
	// ModeJapanese keeps word tokens containing at least one Hiragana,
	// Katakana or Han character.
	ModeJapanese Mode = "japanese"
	// ModeKanji keeps word tokens made exclusively of Han characters.
	ModeKanji Mode = "kanji"
)

// ParseMode converts a config value into a Mode (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeJapanese:
		return ModeJapanese, nil
	case ModeKanji:
		return ModeKanji, nil
	}
	return "", fmt.Errorf("vocab: unknown filter mode %q", s)
}

// Filter classifies tokens as keep or discard. It is pure and safe for
// concurrent use.
type Filter struct {
	mode Mode
}

// NewFilter returns a Filter for the given mode. An empty mode means ModeKanji.
func NewFilter(mode Mode) Filter {
	if mode == "" {
		mode = ModeKanji
	}
	return Filter{mode: mode}
}

// Mode reports the filter's script rule.
func (f Filter) Mode() Mode { return f.mode }

// Keep reports whether tok is a vocabulary word under this filter.
func (f Filter) Keep(tok string) bool {
	if !IsWordToken(tok) {
		return false
	}
	if f.mode == ModeJapanese {
		return HasJapaneseScript(tok)
	}
	return IsKanjiOnly(tok)
}

// IsWordToken reports whether tok is non-empty, not blank, and made only of
// word characters: letters, digits, combining marks and underscore.
func IsWordToken(tok string) bool {
	if strings.TrimSpace(tok) == "" {
		return false
	}
	for _, r := range tok {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

// HasJapaneseScript reports whether tok contains a Hiragana, Katakana or Han rune.
func HasJapaneseScript(tok string) bool {
	for _, r := range tok {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

// IsKanjiOnly reports whether tok is non-empty and every rune is Han.
func IsKanjiOnly(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
