package provider

import (
	"context"
	"time"

	"github.com/heartmarshall/jpgloss/internal/domain"
)

// DictionaryProvider looks a single word up in an external dictionary.
// It returns (nil, nil) when the word is not found and a non-nil error
// only for transient failures.
type DictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*DictionaryResult, error)
}

// DictionaryResult is the structured result from a dictionary provider.
type DictionaryResult struct {
	Word    string        `json:"word"`
	Reading string        `json:"reading,omitempty"`
	Common  bool          `json:"common,omitempty"`
	Senses  []SenseResult `json:"senses"`
}

// SenseResult represents a single word sense from a dictionary.
type SenseResult struct {
	Meanings      []string `json:"meanings"`
	PartsOfSpeech []string `json:"parts_of_speech,omitempty"`
}

// HasMeaning reports whether any sense carries a non-empty meaning.
func (r *DictionaryResult) HasMeaning() bool {
	if r == nil {
		return false
	}
	for _, s := range r.Senses {
		for _, m := range s.Meanings {
			if m != "" {
				return true
			}
		}
	}
	return false
}

// ToEntry flattens the result into a domain entry. Meanings keep sense order
// and drop empty strings and duplicates.
func (r *DictionaryResult) ToEntry() domain.MeaningEntry {
	entry := domain.MeaningEntry{
		Word:    r.Word,
		Reading: r.Reading,
		Common:  r.Common,
	}
	seenMeaning := make(map[string]bool)
	seenPOS := make(map[string]bool)
	for _, s := range r.Senses {
		for _, m := range s.Meanings {
			if m == "" || seenMeaning[m] {
				continue
			}
			seenMeaning[m] = true
			entry.Meanings = append(entry.Meanings, m)
		}
		for _, p := range s.PartsOfSpeech {
			if p == "" || seenPOS[p] {
				continue
			}
			seenPOS[p] = true
			entry.PartsOfSpeech = append(entry.PartsOfSpeech, p)
		}
	}
	return entry
}

// CachedResult is a DictionaryResult read back from a lookup cache.
type CachedResult struct {
	Result    *DictionaryResult
	FetchedAt time.Time
}
