package vocab

import "sort"

// Set holds each kept token once, keyed by exact string equality.
type Set struct {
	words map[string]struct{}
}

// Build applies f to every token and returns the surviving tokens as a Set.
func Build(tokens []string, f Filter) Set {
	words := make(map[string]struct{})
	for _, tok := range tokens {
		if f.Keep(tok) {
			words[tok] = struct{}{}
		}
	}
	return Set{words: words}
}

// Contains reports whether word is in the set.
func (s Set) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of unique words.
func (s Set) Len() int { return len(s.words) }

// Words returns the words in sorted order. The order carries no meaning; it
// only keeps lookup dispatch and logs deterministic.
func (s Set) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
