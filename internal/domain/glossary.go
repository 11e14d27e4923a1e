package domain

import "sort"

// Glossary maps each vocabulary word of a run to its Lookup outcome.
// It is built once, after every lookup has finished, and never mutated.
type Glossary struct {
	entries map[string]Lookup
}

// NewGlossary merges per-word lookup results into a Glossary.
// If a word appears more than once the last result wins.
func NewGlossary(lookups []Lookup) Glossary {
	entries := make(map[string]Lookup, len(lookups))
	for _, l := range lookups {
		entries[l.Word] = l
	}
	return Glossary{entries: entries}
}

// Get returns the lookup outcome for word.
func (g Glossary) Get(word string) (Lookup, bool) {
	l, ok := g.entries[word]
	return l, ok
}

// Meaning returns the first meaning of word if it was resolved.
func (g Glossary) Meaning(word string) (string, bool) {
	l, ok := g.entries[word]
	if !ok || l.Status != StatusFound {
		return "", false
	}
	m := l.Entry.FirstMeaning()
	if m == "" {
		return "", false
	}
	return m, true
}

// Len returns the number of words in the glossary.
func (g Glossary) Len() int { return len(g.entries) }

// Words returns the glossary words in sorted order.
func (g Glossary) Words() []string {
	words := make([]string, 0, len(g.entries))
	for w := range g.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Counts returns the number of lookups per status.
func (g Glossary) Counts() map[LookupStatus]int {
	counts := make(map[LookupStatus]int, 3)
	for _, l := range g.entries {
		counts[l.Status]++
	}
	return counts
}
